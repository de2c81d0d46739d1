package encode

import (
	"net/url"
	"strings"
)

// microEscapeSet are the characters that collide with micro-format
// delimiters and must be backslash-prefixed.
const microEscapeSet = `\;,:"'`

// escapeMicro prefixes each delimiter character with a backslash in a
// single left-to-right pass over the raw value.
func escapeMicro(s string) string {
	if !strings.ContainsAny(s, microEscapeSet) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if strings.ContainsRune(microEscapeSet, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// queryEscape percent-encodes a value for a URI query component,
// using %20 for spaces rather than '+' so the result is valid in any
// URI context.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
