// Package encode builds QR content strings from per-template form
// fields. Each template kind maps to one micro-format (WIFI:, VCARD,
// MECARD:, VEVENT, bitcoin:, geo:, mailto:, sms:, tel:) with its own
// escaping rules: free text placed into delimited formats is
// backslash-escaped, values placed into URI queries are
// percent-encoded, and URI path segments are passed through as-is.
package encode

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultContent is encoded for an empty text template and for any
// unknown template kind.
const DefaultContent = "https://example.com"

// Kind identifies a content template.
type Kind int

const (
	KindText Kind = iota
	KindWiFi
	KindVCard
	KindMeCard
	KindEmail
	KindSMS
	KindPhone
	KindGeo
	KindBitcoin
	KindEvent

	// KindUnknown is returned by ParseKind for unrecognized names and
	// encodes to DefaultContent.
	KindUnknown Kind = -1
)

// Fields holds raw form-field values keyed by field name. Empty and
// absent values are equivalent.
type Fields map[string]string

// ParseKind maps a template name to its Kind. The second return is
// false for names no template matches.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "url":
		return KindText, true
	case "wifi":
		return KindWiFi, true
	case "vcard":
		return KindVCard, true
	case "mecard":
		return KindMeCard, true
	case "email":
		return KindEmail, true
	case "sms":
		return KindSMS, true
	case "phone", "tel":
		return KindPhone, true
	case "geo":
		return KindGeo, true
	case "bitcoin":
		return KindBitcoin, true
	case "event":
		return KindEvent, true
	}
	return KindUnknown, false
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindWiFi:
		return "wifi"
	case KindVCard:
		return "vcard"
	case KindMeCard:
		return "mecard"
	case KindEmail:
		return "email"
	case KindSMS:
		return "sms"
	case KindPhone:
		return "phone"
	case KindGeo:
		return "geo"
	case KindBitcoin:
		return "bitcoin"
	case KindEvent:
		return "event"
	}
	return "unknown"
}

// FieldNames lists the form-field names a kind reads, in display
// order. Unknown kinds have none.
func FieldNames(k Kind) []string {
	switch k {
	case KindText:
		return []string{"text"}
	case KindWiFi:
		return []string{"ssid", "password", "encryption", "hidden"}
	case KindVCard:
		return []string{"name", "phone", "email", "org", "title", "url", "address", "note"}
	case KindMeCard:
		return []string{"name", "phone", "email", "address", "url", "note"}
	case KindEmail:
		return []string{"email", "subject", "body"}
	case KindSMS:
		return []string{"phone", "body"}
	case KindPhone:
		return []string{"phone"}
	case KindGeo:
		return []string{"latitude", "longitude"}
	case KindBitcoin:
		return []string{"address", "amount"}
	case KindEvent:
		return []string{"summary", "location", "description", "start", "end"}
	}
	return nil
}

// Encode builds the content string for a template kind from its
// fields. It is a pure function: malformed field values are treated
// as absent rather than reported, and empty fields are omitted from
// the output instead of emitted blank.
func Encode(kind Kind, f Fields) string {
	if f == nil {
		f = Fields{}
	}
	switch kind {
	case KindText:
		return encodeText(f)
	case KindWiFi:
		return encodeWiFi(f)
	case KindVCard:
		return encodeVCard(f)
	case KindMeCard:
		return encodeMeCard(f)
	case KindEmail:
		return encodeEmail(f)
	case KindSMS:
		return encodeSMS(f)
	case KindPhone:
		return encodePhone(f)
	case KindGeo:
		return encodeGeo(f)
	case KindBitcoin:
		return encodeBitcoin(f)
	case KindEvent:
		return encodeEvent(f)
	}
	return DefaultContent
}

func encodeText(f Fields) string {
	v := strings.TrimSpace(f["text"])
	if v == "" {
		return DefaultContent
	}
	return v
}

// encodeWiFi emits WIFI:T:<enc>;S:<ssid>;P:<pass>;H:true;; per the
// common WPA supplicant format. The password is omitted whenever the
// encryption mode is nopass, even if one was typed.
func encodeWiFi(f Fields) string {
	enc := strings.TrimSpace(f["encryption"])
	if enc == "" {
		enc = "WPA"
	}

	var b strings.Builder
	b.WriteString("WIFI:")
	b.WriteString("T:")
	b.WriteString(escapeMicro(enc))
	b.WriteString(";")
	if ssid := f["ssid"]; ssid != "" {
		b.WriteString("S:")
		b.WriteString(escapeMicro(ssid))
		b.WriteString(";")
	}
	if pass := f["password"]; pass != "" && !strings.EqualFold(enc, "nopass") {
		b.WriteString("P:")
		b.WriteString(escapeMicro(pass))
		b.WriteString(";")
	}
	if f["hidden"] == "true" {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

// splitName divides a display name into given and family parts: the
// first token is the given name, the remainder the family name.
func splitName(name string) (given, family string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func encodeVCard(f Fields) string {
	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}
	if name := strings.TrimSpace(f["name"]); name != "" {
		given, family := splitName(name)
		lines = append(lines, fmt.Sprintf("N:%s;%s;;;", escapeMicro(family), escapeMicro(given)))
		lines = append(lines, "FN:"+escapeMicro(name))
	}
	if org := f["org"]; org != "" {
		lines = append(lines, "ORG:"+escapeMicro(org))
	}
	if title := f["title"]; title != "" {
		lines = append(lines, "TITLE:"+escapeMicro(title))
	}
	if phone := f["phone"]; phone != "" {
		lines = append(lines, "TEL:"+escapeMicro(phone))
	}
	if email := f["email"]; email != "" {
		lines = append(lines, "EMAIL:"+escapeMicro(email))
	}
	if addr := f["address"]; addr != "" {
		lines = append(lines, "ADR:;;"+escapeMicro(addr)+";;;")
	}
	if u := f["url"]; u != "" {
		lines = append(lines, "URL:"+escapeMicro(u))
	}
	if note := f["note"]; note != "" {
		lines = append(lines, "NOTE:"+escapeMicro(note))
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

func encodeMeCard(f Fields) string {
	var b strings.Builder
	b.WriteString("MECARD:")
	if name := strings.TrimSpace(f["name"]); name != "" {
		given, family := splitName(name)
		b.WriteString("N:")
		if family != "" {
			b.WriteString(escapeMicro(family))
			b.WriteString(",")
			b.WriteString(escapeMicro(given))
		} else {
			b.WriteString(escapeMicro(given))
		}
		b.WriteString(";")
	}
	if phone := f["phone"]; phone != "" {
		b.WriteString("TEL:")
		b.WriteString(escapeMicro(phone))
		b.WriteString(";")
	}
	if email := f["email"]; email != "" {
		b.WriteString("EMAIL:")
		b.WriteString(escapeMicro(email))
		b.WriteString(";")
	}
	if addr := f["address"]; addr != "" {
		b.WriteString("ADR:")
		b.WriteString(escapeMicro(addr))
		b.WriteString(";")
	}
	if u := f["url"]; u != "" {
		b.WriteString("URL:")
		b.WriteString(escapeMicro(u))
		b.WriteString(";")
	}
	if note := f["note"]; note != "" {
		b.WriteString("NOTE:")
		b.WriteString(escapeMicro(note))
		b.WriteString(";")
	}
	b.WriteString(";")
	return b.String()
}

func encodeEmail(f Fields) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(strings.TrimSpace(f["email"]))
	writeQuery(&b, [][2]string{
		{"subject", f["subject"]},
		{"body", f["body"]},
	})
	return b.String()
}

func encodeSMS(f Fields) string {
	var b strings.Builder
	b.WriteString("sms:")
	b.WriteString(strings.TrimSpace(f["phone"]))
	writeQuery(&b, [][2]string{
		{"body", f["body"]},
	})
	return b.String()
}

func encodePhone(f Fields) string {
	return "tel:" + strings.TrimSpace(f["phone"])
}

// encodeGeo validates both coordinates as decimal numbers; a value
// that does not parse is replaced by 0 and generation continues.
func encodeGeo(f Fields) string {
	return "geo:" + coordinate(f["latitude"]) + "," + coordinate(f["longitude"])
}

func coordinate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "0"
	}
	return s
}

func encodeBitcoin(f Fields) string {
	var b strings.Builder
	b.WriteString("bitcoin:")
	b.WriteString(strings.TrimSpace(f["address"]))
	amount := strings.TrimSpace(f["amount"])
	if v, err := strconv.ParseFloat(amount, 64); err != nil || v <= 0 {
		amount = ""
	}
	writeQuery(&b, [][2]string{
		{"amount", amount},
	})
	return b.String()
}

// writeQuery appends ?k=v&k=v for the non-empty params, in the given
// order, percent-encoding the values.
func writeQuery(b *strings.Builder, params [][2]string) {
	sep := "?"
	for _, p := range params {
		if p[1] == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(p[0])
		b.WriteString("=")
		b.WriteString(queryEscape(p[1]))
		sep = "&"
	}
}
