// Package render turns QR module grids into raster bitmaps and vector SVG
// documents.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/qrstudio/qrstudio/internal/logo"
	"github.com/qrstudio/qrstudio/internal/qrgen"
)

const (
	jpegQuality = 92

	// Logo overlay geometry, relative to the larger fitted logo dimension.
	platePadRatio    = 0.10
	plateRadiusRatio = 0.05
)

// Raster is a rendered QR bitmap together with the geometry that produced
// it. The pixel data is owned by the raster and freed by Release, which
// may run concurrently with the accessors: an encode that took its
// snapshot before the release finishes from that snapshot.
type Raster struct {
	mu   sync.Mutex
	img  *image.RGBA
	side int
	cell int
	bg   color.RGBA
}

// Rasterize draws grid onto a square bitmap according to cfg. The module
// size is the largest whole pixel count that fits every module plus the
// quiet zone into cfg.Size, so the bitmap side is at most cfg.Size. A logo
// asset, when given, is centered on a rounded plate filled with the
// background color.
func Rasterize(cfg qrgen.Config, grid *qrgen.Grid, asset *logo.Asset) (*Raster, error) {
	total := grid.Side() + 2*cfg.Margin
	cell := cfg.Size / total
	if cell < 1 {
		return nil, fmt.Errorf("%w: %d modules do not fit into %dpx", ErrSurface, total, cfg.Size)
	}
	side := cell * total

	dc := gg.NewContext(side, side)
	dc.SetColor(cfg.Background)
	dc.Clear()

	dc.SetColor(cfg.Foreground)
	fc := float64(cell)
	for row := 0; row < grid.Side(); row++ {
		for col := 0; col < grid.Side(); col++ {
			if !grid.Dark(row, col) {
				continue
			}
			x := float64((col + cfg.Margin) * cell)
			y := float64((row + cfg.Margin) * cell)
			switch cfg.Style {
			case qrgen.StyleRounded:
				dc.DrawRoundedRectangle(x, y, fc, fc, 0.3*fc)
			case qrgen.StyleDots:
				dc.DrawCircle(x+fc/2, y+fc/2, 0.4*fc)
			default:
				dc.DrawRectangle(x, y, fc, fc)
			}
			dc.Fill()
		}
	}

	if asset != nil && cfg.HasLogo {
		overlayLogo(dc, asset, side, cfg.LogoSizePercent, cfg.Background)
	}

	return &Raster{
		img:  dc.Image().(*image.RGBA),
		side: side,
		cell: cell,
		bg:   cfg.Background,
	}, nil
}

// overlayLogo scales asset to fit a centered box of percent of the bitmap
// side, preserving its aspect ratio, and draws it over a rounded plate.
func overlayLogo(dc *gg.Context, asset *logo.Asset, side, percent int, bg color.RGBA) {
	box := float64(side) * float64(percent) / 100
	w := float64(asset.Width)
	h := float64(asset.Height)
	scale := math.Min(box/w, box/h)
	if w*scale < 1 || h*scale < 1 {
		return
	}

	// Resizing with one dimension zero keeps the source aspect ratio exact.
	var fitted image.Image
	if w >= h {
		fitted = resize.Resize(uint(math.Round(w*scale)), 0, asset.Image, resize.Lanczos3)
	} else {
		fitted = resize.Resize(0, uint(math.Round(h*scale)), asset.Image, resize.Lanczos3)
	}

	fb := fitted.Bounds()
	lw := float64(fb.Dx())
	lh := float64(fb.Dy())
	larger := math.Max(lw, lh)
	pad := platePadRatio * larger
	radius := plateRadiusRatio * larger

	cx := float64(side) / 2
	cy := float64(side) / 2
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(cx-lw/2-pad, cy-lh/2-pad, lw+2*pad, lh+2*pad, radius)
	dc.Fill()
	dc.DrawImage(fitted, int(math.Round(cx-lw/2)), int(math.Round(cy-lh/2)))
}

// Side returns the bitmap side length in pixels, zero after Release.
func (r *Raster) Side() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.side
}

// Cell returns the module size in pixels, zero after Release.
func (r *Raster) Cell() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cell
}

// Image returns the backing bitmap, or nil after Release.
func (r *Raster) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.img
}

// PNG encodes the bitmap as PNG, keeping any alpha channel.
func (r *Raster) PNG() ([]byte, error) {
	img := r.Image()
	if img == nil {
		return nil, ErrReleased
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// JPEG encodes the bitmap as JPEG. JPEG has no alpha channel, so the
// bitmap is first composited onto an opaque background color plane, white
// when the configured background is fully transparent.
func (r *Raster) JPEG() ([]byte, error) {
	img := r.Image()
	if img == nil {
		return nil, ErrReleased
	}

	bg := r.bg
	if bg.A == 0 {
		bg = color.RGBA{255, 255, 255, 255}
	}
	bg.A = 255

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Release drops the pixel data. Encoding after Release fails with
// ErrReleased; Release is idempotent.
func (r *Raster) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.img = nil
	r.side = 0
	r.cell = 0
}
