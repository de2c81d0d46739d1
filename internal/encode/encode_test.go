package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMicro(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Home Network", "Home Network"},
		{"semicolon", "a;b", `a\;b`},
		{"backslash and colon", `C:\dir`, `C\:\\dir`},
		{"all delimiters", `it's "x", ok:`, `it\'s \"x\"\, ok\:`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeMicro(tt.in))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("WiFi")
	require.True(t, ok)
	assert.Equal(t, KindWiFi, k)

	k, ok = ParseKind("")
	require.True(t, ok)
	assert.Equal(t, KindText, k)

	k, ok = ParseKind("bogus")
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, k)
}

func TestEncodeTextDefaults(t *testing.T) {
	assert.Equal(t, "hello", Encode(KindText, Fields{"text": "  hello  "}))
	assert.Equal(t, DefaultContent, Encode(KindText, nil))
	assert.Equal(t, DefaultContent, Encode(KindText, Fields{"text": "   "}))
	assert.Equal(t, DefaultContent, Encode(KindUnknown, Fields{"text": "ignored"}))
}

func TestEncodeWiFiNoPassOmitsPassword(t *testing.T) {
	got := Encode(KindWiFi, Fields{
		"ssid":       "Home",
		"password":   "secret",
		"encryption": "nopass",
		"hidden":     "false",
	})
	assert.Equal(t, "WIFI:T:nopass;S:Home;;", got)
}

func TestEncodeWiFi(t *testing.T) {
	got := Encode(KindWiFi, Fields{
		"ssid":     "Cafe Net",
		"password": "p;w",
		"hidden":   "true",
	})
	assert.Equal(t, `WIFI:T:WPA;S:Cafe Net;P:p\;w;H:true;;`, got)

	// Empty fields are omitted, not emitted blank.
	assert.Equal(t, "WIFI:T:WEP;;", Encode(KindWiFi, Fields{"encryption": "WEP"}))
}

func TestEncodeVCardNameSplit(t *testing.T) {
	got := Encode(KindVCard, Fields{"name": "Jane Smith"})
	lines := strings.Split(got, "\n")

	assert.Equal(t, "BEGIN:VCARD", lines[0])
	assert.Equal(t, "VERSION:3.0", lines[1])
	assert.Contains(t, lines, "N:Smith;Jane;;;")
	assert.Contains(t, lines, "FN:Jane Smith")
	assert.Equal(t, "END:VCARD", lines[len(lines)-1])
}

func TestEncodeVCardFields(t *testing.T) {
	got := Encode(KindVCard, Fields{
		"name":  "Mary Jane Watson",
		"phone": "+4712345678",
		"email": "mary@example.com",
		"org":   "Daily; Bugle",
	})
	lines := strings.Split(got, "\n")

	assert.Contains(t, lines, "N:Jane Watson;Mary;;;")
	assert.Contains(t, lines, "TEL:+4712345678")
	assert.Contains(t, lines, "EMAIL:mary@example.com")
	assert.Contains(t, lines, `ORG:Daily\; Bugle`)
	assert.NotContains(t, got, "URL:")
	assert.NotContains(t, got, "NOTE:")
}

func TestEncodeMeCard(t *testing.T) {
	got := Encode(KindMeCard, Fields{
		"name":  "Jane Smith",
		"phone": "12345678",
	})
	assert.Equal(t, "MECARD:N:Smith,Jane;TEL:12345678;;", got)
}

func TestEncodeEmail(t *testing.T) {
	got := Encode(KindEmail, Fields{
		"email":   "a@b.c",
		"subject": "Hello World",
		"body":    "Q&A?",
	})
	assert.Equal(t, "mailto:a@b.c?subject=Hello%20World&body=Q%26A%3F", got)

	// Address stays in the path unescaped; empty params are dropped.
	assert.Equal(t, "mailto:a@b.c", Encode(KindEmail, Fields{"email": "a@b.c"}))
}

func TestEncodeSMSAndPhone(t *testing.T) {
	assert.Equal(t, "sms:+47123?body=On%20my%20way", Encode(KindSMS, Fields{
		"phone": "+47123",
		"body":  "On my way",
	}))
	assert.Equal(t, "tel:+47123", Encode(KindPhone, Fields{"phone": "+47123"}))
}

func TestEncodeGeo(t *testing.T) {
	assert.Equal(t, "geo:59.9139,10.7522", Encode(KindGeo, Fields{
		"latitude":  "59.9139",
		"longitude": "10.7522",
	}))

	// A coordinate that fails to parse is treated as absent.
	assert.Equal(t, "geo:0,0", Encode(KindGeo, Fields{
		"latitude":  "north-ish",
		"longitude": "",
	}))
}

func TestEncodeBitcoin(t *testing.T) {
	assert.Equal(t, "bitcoin:bc1xyz?amount=0.05", Encode(KindBitcoin, Fields{
		"address": "bc1xyz",
		"amount":  "0.05",
	}))
	assert.Equal(t, "bitcoin:bc1xyz", Encode(KindBitcoin, Fields{
		"address": "bc1xyz",
		"amount":  "lots",
	}))
	assert.Equal(t, "bitcoin:bc1xyz", Encode(KindBitcoin, Fields{
		"address": "bc1xyz",
		"amount":  "-1",
	}))
}

func TestEncodeEvent(t *testing.T) {
	fields := Fields{
		"summary":  "Team Sync",
		"location": "Room 4",
		"start":    "2024-06-01T10:00",
	}
	got := Encode(KindEvent, fields)

	assert.Contains(t, got, "BEGIN:VCALENDAR")
	assert.Contains(t, got, "BEGIN:VEVENT")
	assert.Contains(t, got, "SUMMARY:Team Sync")
	assert.Contains(t, got, "LOCATION:Room 4")
	assert.Contains(t, got, "DTSTART:20240601T100000Z")
	// Missing end defaults to one hour after start.
	assert.Contains(t, got, "DTEND:20240601T110000Z")
}

func TestEncodeEventDeterministic(t *testing.T) {
	fields := Fields{"summary": "Standup", "start": "2024-06-01T10:00"}

	first := Encode(KindEvent, fields)
	second := Encode(KindEvent, fields)
	assert.Equal(t, first, second)

	other := Encode(KindEvent, Fields{"summary": "Retro", "start": "2024-06-01T10:00"})
	assert.NotEqual(t, first, other)
}

func TestEncodeEventInvalidTimes(t *testing.T) {
	got := Encode(KindEvent, Fields{
		"summary": "Sometime",
		"start":   "next tuesday",
	})

	assert.Contains(t, got, "SUMMARY:Sometime")
	assert.NotContains(t, got, "DTSTART")
	assert.NotContains(t, got, "DTEND")
}
