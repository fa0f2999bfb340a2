package pixelciv

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("pixelciv: coordinate out of bounds")

// Grid stores one Person per cell in row-major order. The grid itself does no
// locking; concurrent access discipline belongs to the scheduler.
type Grid struct {
	W, H  int
	cells []Person
}

// NewGrid allocates a grid with the given dimensions, all cells inactive.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, cells: make([]Person, w*h)}
}

// Cells exposes the backing slice so callers can read/write cells directly.
func (g *Grid) Cells() []Person { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns a pointer to the cell at (x, y), or ErrOutOfBounds when the
// coordinate lies outside the grid.
func (g *Grid) At(x, y int) (*Person, error) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.W, g.H)
	}
	return &g.cells[y*g.W+x], nil
}

// Clear resets every cell to the inactive zero value.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Person{}
	}
}

// Range is a contiguous row-major run of cells assigned to one worker.
type Range struct {
	From   int
	Length int
}

// Partition splits the grid into n contiguous row-major ranges covering every
// cell exactly once. Range lengths differ by at most one cell.
func (g *Grid) Partition(n int) []Range {
	total := g.W * g.H
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	base := total / n
	rem := total % n
	ranges := make([]Range, n)
	from := 0
	for i := range ranges {
		length := base
		if i < rem {
			length++
		}
		ranges[i] = Range{From: from, Length: length}
		from += length
	}
	return ranges
}
