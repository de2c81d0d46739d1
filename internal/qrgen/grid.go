package qrgen

import "errors"

// ErrInvalidGrid is returned when module data is empty or not square.
var ErrInvalidGrid = errors.New("qrgen: module grid must be square and non-empty")

// Grid is a square boolean module matrix: true cells are dark.
type Grid struct {
	cells [][]bool
}

// NewGrid wraps module cells in a Grid, validating the shape. The
// slice is used directly, not copied.
func NewGrid(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 {
		return nil, ErrInvalidGrid
	}
	for _, row := range cells {
		if len(row) != len(cells) {
			return nil, ErrInvalidGrid
		}
	}
	return &Grid{cells: cells}, nil
}

// Side returns the module count along one edge.
func (g *Grid) Side() int {
	return len(g.cells)
}

// Dark reports whether the module at (row, col) is dark.
func (g *Grid) Dark(row, col int) bool {
	return g.cells[row][col]
}
