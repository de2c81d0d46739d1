package qrgen

import (
	"errors"
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

// Encode produces the module grid for a content string at the given
// error-correction level. The underlying library picks the smallest
// QR version that fits, so the grid side length is data-dependent.
func Encode(content string, level Level) (*Grid, error) {
	qrc, err := qrcode.NewWith(content, level.encodeOption())
	if err != nil {
		return nil, fmt.Errorf("encode qr matrix: %w", err)
	}

	mc := &matrixCapture{}
	if err := qrc.Save(mc); err != nil {
		return nil, fmt.Errorf("capture qr matrix: %w", err)
	}
	if mc.grid == nil {
		return nil, errors.New("qr encoder produced no matrix")
	}
	return mc.grid, nil
}

// matrixCapture implements qrcode.Writer to lift the module matrix
// out of the encoder instead of rasterizing it.
type matrixCapture struct {
	grid *Grid
}

func (w *matrixCapture) Write(mat qrcode.Matrix) error {
	side := mat.Width()
	if side <= 0 || side != mat.Height() {
		return ErrInvalidGrid
	}
	cells := make([][]bool, side)
	for i := range cells {
		cells[i] = make([]bool, side)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		if y >= 0 && y < side && x >= 0 && x < side && v.IsSet() {
			cells[y][x] = true
		}
	})

	grid, err := NewGrid(cells)
	if err != nil {
		return err
	}
	w.grid = grid
	return nil
}

func (w *matrixCapture) Close() error { return nil }
