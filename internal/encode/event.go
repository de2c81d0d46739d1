package encode

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/zeebo/xxh3"
)

// eventTimeLayout matches the value format of datetime-local inputs.
const eventTimeLayout = "2006-01-02T15:04"

// encodeEvent emits a single-event VCALENDAR. The output must be a
// pure function of the fields because it feeds the render cache key,
// so the UID is derived from the field content and DTSTAMP is taken
// from the event start instead of the wall clock.
func encodeEvent(f Fields) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//qrstudio//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	e := cal.AddEvent(eventUID(f))
	if s := f["summary"]; s != "" {
		e.SetSummary(s)
	}
	if loc := f["location"]; loc != "" {
		e.SetLocation(loc)
	}
	if desc := f["description"]; desc != "" {
		e.SetDescription(desc)
	}

	start, startOK := parseEventTime(f["start"])
	end, endOK := parseEventTime(f["end"])
	if startOK {
		e.SetDtStampTime(start)
		e.SetStartAt(start)
		if !endOK || end.Before(start) {
			end = start.Add(time.Hour)
		}
		e.SetEndAt(end)
	}

	return cal.Serialize()
}

// parseEventTime reads a datetime-local value; malformed input is
// reported as absent.
func parseEventTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(eventTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func eventUID(f Fields) string {
	var b strings.Builder
	for _, name := range FieldNames(KindEvent) {
		b.WriteString(f[name])
		b.WriteByte(0)
	}
	return fmt.Sprintf("%016x@qrstudio", xxh3.HashString(b.String()))
}
