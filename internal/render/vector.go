package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/qrstudio/qrstudio/internal/qrgen"
	"github.com/qrstudio/qrstudio/internal/sanitize"
)

// Vector is a sanitized SVG rendering of a QR grid. Release may run
// concurrently with SVG.
type Vector struct {
	mu  sync.Mutex
	svg string
}

// Vectorize builds an SVG document whose root viewport is exactly cfg.Size
// pixels square. Modules use a fractional cell size so the drawing spans
// the full viewport with no truncation remainder. Every document passes
// through the sanitizer before it is returned; a document that fails
// sanitization is never served.
func Vectorize(cfg qrgen.Config, grid *qrgen.Grid) (*Vector, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("%w: invalid target size %dpx", ErrSurface, cfg.Size)
	}
	total := grid.Side() + 2*cfg.Margin
	cell := float64(cfg.Size) / float64(total)

	sb := strings.Builder{}
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		cfg.Size, cfg.Size, cfg.Size, cfg.Size))

	if cfg.Background.A > 0 {
		sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`,
			cfg.Size, cfg.Size, svgColor(cfg.Background)))
	}

	fill := svgColor(cfg.Foreground)
	for row := 0; row < grid.Side(); row++ {
		for col := 0; col < grid.Side(); col++ {
			if !grid.Dark(row, col) {
				continue
			}
			x := (float64(col) + float64(cfg.Margin)) * cell
			y := (float64(row) + float64(cfg.Margin)) * cell
			switch cfg.Style {
			case qrgen.StyleRounded:
				sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`,
					fnum(x), fnum(y), fnum(cell), fnum(cell), fnum(0.3*cell), fill))
			case qrgen.StyleDots:
				sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
					fnum(x+cell/2), fnum(y+cell/2), fnum(0.4*cell), fill))
			default:
				sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
					fnum(x), fnum(y), fnum(cell), fnum(cell), fill))
			}
		}
	}
	sb.WriteString(`</svg>`)

	clean, err := sanitize.SVG(sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: sanitize svg: %v", ErrSurface, err)
	}
	return &Vector{svg: clean}, nil
}

// SVG returns the sanitized document.
func (v *Vector) SVG() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.svg == "" {
		return "", ErrReleased
	}
	return v.svg, nil
}

// Release drops the document text.
func (v *Vector) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.svg = ""
}

// fnum formats a coordinate with at most two decimal places, dropping
// trailing zeros.
func fnum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
