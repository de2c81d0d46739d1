// Package sanitize rewrites SVG markup through an allowlist so that
// only drawing primitives and their styling survive. Scripts, event
// handlers, hyperlinks, and foreign content are removed wholesale.
package sanitize

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

var allowedElements = map[string]bool{
	"svg": true, "g": true, "defs": true,
	"rect": true, "circle": true, "ellipse": true,
	"line": true, "polyline": true, "polygon": true, "path": true,
	"linearGradient": true, "radialGradient": true, "stop": true,
	"title": true, "desc": true,
}

var allowedAttributes = map[string]bool{
	"xmlns": true, "viewBox": true, "width": true, "height": true,
	"x": true, "y": true, "x1": true, "y1": true, "x2": true, "y2": true,
	"rx": true, "ry": true, "cx": true, "cy": true, "r": true,
	"d": true, "points": true, "transform": true,
	"fill": true, "fill-rule": true, "fill-opacity": true,
	"stroke": true, "stroke-width": true, "stroke-linecap": true,
	"stroke-linejoin": true, "opacity": true,
	"offset": true, "stop-color": true, "stop-opacity": true,
	"id": true, "shape-rendering": true,
}

// SVG returns a sanitized copy of the markup. Disallowed elements are
// dropped together with their entire subtree; disallowed and
// namespaced attributes are dropped from kept elements. An error
// means the input was not well-formed XML or had no svg root, and the
// caller must not use the original markup in its place.
func SVG(markup string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))

	var b strings.Builder
	b.Grow(len(markup))
	b.WriteString(xmlHeader)

	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("sanitize svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if !allowedElements[name] {
				if err := dec.Skip(); err != nil {
					return "", fmt.Errorf("sanitize svg: %w", err)
				}
				continue
			}
			if name == "svg" {
				sawRoot = true
			}
			b.WriteByte('<')
			b.WriteString(name)
			for _, attr := range t.Attr {
				if attr.Name.Space != "" || !allowedAttributes[attr.Name.Local] {
					continue
				}
				b.WriteByte(' ')
				b.WriteString(attr.Name.Local)
				b.WriteString(`="`)
				_ = xml.EscapeText(&b, []byte(attr.Value))
				b.WriteByte('"')
			}
			b.WriteByte('>')
		case xml.EndElement:
			if allowedElements[t.Name.Local] {
				b.WriteString("</")
				b.WriteString(t.Name.Local)
				b.WriteByte('>')
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			_ = xml.EscapeText(&b, t)
		}
		// Comments, directives, and processing instructions are dropped.
	}

	if !sawRoot {
		return "", errors.New("sanitize svg: missing svg root element")
	}
	return b.String(), nil
}
