// Package qrgen turns content strings into QR module grids and holds
// the generation configuration those grids are rendered under.
package qrgen

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/yeqown/go-qrcode/v2"
)

// Level is the QR error-correction level.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelQuartile
	LevelHigh
)

// ParseLevel maps the single-letter level names; anything unrecognized
// falls back to M.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelLow
	case "M":
		return LevelMedium
	case "Q":
		return LevelQuartile
	case "H":
		return LevelHigh
	}
	return LevelMedium
}

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "L"
	case LevelQuartile:
		return "Q"
	case LevelHigh:
		return "H"
	}
	return "M"
}

func (l Level) encodeOption() qrcode.EncodeOption {
	switch l {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
	return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
}

// Style selects how dark modules are painted.
type Style int

const (
	StyleSquare Style = iota
	StyleRounded
	StyleDots
)

// ParseStyle maps a style name; anything unrecognized falls back to
// square.
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rounded":
		return StyleRounded
	case "dots":
		return StyleDots
	}
	return StyleSquare
}

func (s Style) String() string {
	switch s {
	case StyleRounded:
		return "rounded"
	case StyleDots:
		return "dots"
	}
	return "square"
}

// ParseColor parses a six-digit hex color with optional leading #. The
// literal "transparent" yields a fully transparent color; anything else
// that does not parse falls back to def.
func ParseColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{0, 0, 0, 0}
	}

	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return def
	}

	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return def
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Config is the immutable snapshot a render is generated from. Two
// configs are cache-equivalent iff every field compares equal; logo
// presence participates, logo content does not.
type Config struct {
	Content         string
	Size            int
	Foreground      color.RGBA
	Background      color.RGBA
	Level           Level
	Margin          int
	Style           Style
	LogoSizePercent int
	HasLogo         bool
}

// Key is the canonical serialization of the config, used as the render
// cache key. Field order is fixed and total; content is the only
// free-form field and sits first, so equal keys imply equal configs.
func (c Config) Key() string {
	logo := 0
	if c.HasLogo {
		logo = 1
	}
	return fmt.Sprintf("c=%s|s=%d|fg=%s|bg=%s|ec=%s|m=%d|st=%s|lp=%d|lg=%d",
		c.Content, c.Size, hexRGBA(c.Foreground), hexRGBA(c.Background),
		c.Level, c.Margin, c.Style, c.LogoSizePercent, logo)
}

func hexRGBA(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
