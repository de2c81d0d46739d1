// Package logo ingests uploaded logo images for embedding into
// rendered QR codes.
package logo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	// ErrUnsupportedType rejects uploads that are not an accepted
	// image MIME type.
	ErrUnsupportedType = errors.New("logo: unsupported content type")
	// ErrTooLarge rejects uploads above the size limit before any
	// decoding happens.
	ErrTooLarge = errors.New("logo: file exceeds size limit")
	// ErrDecode marks image data that could not be decoded.
	ErrDecode = errors.New("logo: undecodable image data")
)

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes = 5 << 20

// svgRasterSide is the fallback raster size for SVG logos that declare
// no usable dimensions.
const svgRasterSide = 512

// Asset is a decoded logo with its natural dimensions.
type Asset struct {
	Image  image.Image
	Width  int
	Height int
}

// Decode reads and decodes an uploaded logo. Only image MIME types are
// accepted and the size limit is enforced before decoding starts, so
// an oversized or mistyped upload is never partially processed. On
// error the caller's logo state is untouched.
func Decode(r io.Reader, contentType string, maxBytes int64) (*Asset, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if base, _, found := strings.Cut(mediaType, ";"); found {
		mediaType = strings.TrimSpace(base)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxBytes)
	}

	var img image.Image
	switch mediaType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/gif":
		img, err = gif.Decode(bytes.NewReader(data))
	case "image/svg+xml":
		img, err = rasterizeSVG(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}
	return &Asset{Image: img, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// rasterizeSVG renders vector logos to pixels at their intrinsic size
// so the raster compositor can treat every logo the same way.
func rasterizeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = svgRasterSide, svgRasterSide
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
