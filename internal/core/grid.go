package core

import (
	"errors"
	"fmt"

	rng "allcolors/pkg/core"
)

var (
	// ErrStartOutOfBounds is returned when the start coordinate is off-grid.
	ErrStartOutOfBounds = errors.New("core: start coordinate out of bounds")
	// ErrDisconnected is returned when some cell cannot be reached from the
	// start through the neighbor relation.
	ErrDisconnected = errors.New("core: neighbor mask leaves cells unreachable from start")
)

// Cell is one grid position. Only Filled and Color change after the grid is
// built; the neighbor list is fixed at construction. The position is implied
// by the cell's id, see Grid.Pos.
type Cell struct {
	Weight int32
	nbrOff int32
	Color  Color
	nbrLen uint8
	Filled bool
}

// Grid stores cells in a row-major arena addressed by int32 ids. Neighbor
// lists are slices of one shared backing array.
type Grid struct {
	W, H int

	mask  Mask
	cells []Cell
	nbrs  []int32
}

// NewGrid allocates a w*h grid, assigns every cell a unique random weight and
// precomputes neighbor lists for the directions enabled in mask.
func NewGrid(w, h int, mask Mask, s *rng.Shuffler) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &Grid{W: w, H: h, mask: mask, cells: make([]Cell, w*h)}
	dirs := mask.Directions()
	g.nbrs = make([]int32, 0, len(g.cells)*len(dirs))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &g.cells[y*w+x]
			c.nbrOff = int32(len(g.nbrs))
			for _, d := range dirs {
				dx, dy := d.Offset()
				nx, ny := x+dx, y+dy
				if !g.InBounds(nx, ny) {
					continue
				}
				g.nbrs = append(g.nbrs, int32(ny*w+nx))
			}
			c.nbrLen = uint8(int32(len(g.nbrs)) - c.nbrOff)
		}
	}
	g.Reweight(s)
	return g
}

// Reweight draws a fresh permutation of weights from s.
func (g *Grid) Reweight(s *rng.Shuffler) {
	for i, w := range rng.Perm(s, len(g.cells)) {
		g.cells[i].Weight = w
	}
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Mask returns the direction mask the neighbor lists were built from.
func (g *Grid) Mask() Mask { return g.mask }

// Index returns the cell id for coordinates (x, y).
func (g *Grid) Index(x, y int) int32 { return int32(y*g.W + x) }

// Pos returns the coordinates of a cell id.
func (g *Grid) Pos(id int32) Coord {
	return Coord{X: int(id) % g.W, Y: int(id) / g.W}
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Cell returns the cell with the given id.
func (g *Grid) Cell(id int32) *Cell { return &g.cells[id] }

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) *Cell { return &g.cells[y*g.W+x] }

// Neighbors returns the fixed neighbor ids of a cell. Callers must not modify
// the returned slice.
func (g *Grid) Neighbors(id int32) []int32 {
	c := &g.cells[id]
	return g.nbrs[c.nbrOff : c.nbrOff+int32(c.nbrLen)]
}

// Filled reports whether the cell holds a colour.
func (g *Grid) Filled(id int32) bool { return g.cells[id].Filled }

// Color returns the colour of a filled cell.
func (g *Grid) Color(id int32) Color { return g.cells[id].Color }

// Weight returns the tie-break weight of a cell.
func (g *Grid) Weight(id int32) int32 { return g.cells[id].Weight }

// Fill stores c in an empty cell. Filling a cell twice means the placement
// bookkeeping is corrupt, so it panics.
func (g *Grid) Fill(id int32, c Color) {
	cell := &g.cells[id]
	if cell.Filled {
		panic(fmt.Sprintf("core: cell %s is already filled with %s", g.Pos(id), cell.Color))
	}
	cell.Filled = true
	cell.Color = c
}

// HasEmptyNeighbor reports whether any neighbor of the cell is empty.
func (g *Grid) HasEmptyNeighbor(id int32) bool {
	for _, n := range g.Neighbors(id) {
		if !g.cells[n].Filled {
			return true
		}
	}
	return false
}

// FilledNeighbors counts the filled neighbors of the cell.
func (g *Grid) FilledNeighbors(id int32) int {
	count := 0
	for _, n := range g.Neighbors(id) {
		if g.cells[n].Filled {
			count++
		}
	}
	return count
}

// CheckStart validates a start coordinate and that every cell is reachable
// from it.
func (g *Grid) CheckStart(start Coord) error {
	return CheckStart(g.Size(), g.mask, start)
}

// CheckStart validates start against a size×mask layout without building the
// grid. It walks the neighbor relation from start with one flag per cell.
func CheckStart(size Size, mask Mask, start Coord) error {
	inBounds := func(x, y int) bool { return x >= 0 && y >= 0 && x < size.W && y < size.H }
	if !inBounds(start.X, start.Y) {
		return fmt.Errorf("%w: %s not in %s", ErrStartOutOfBounds, start, size)
	}
	dirs := mask.Directions()
	seen := make([]bool, size.Area())
	stack := []int32{int32(start.Y*size.W + start.X)}
	seen[stack[0]] = true
	reached := 1
	for len(stack) > 0 {
		id := int(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		x, y := id%size.W, id/size.W
		for _, d := range dirs {
			dx, dy := d.Offset()
			nx, ny := x+dx, y+dy
			if !inBounds(nx, ny) {
				continue
			}
			n := ny*size.W + nx
			if seen[n] {
				continue
			}
			seen[n] = true
			reached++
			stack = append(stack, int32(n))
		}
	}
	if reached != size.Area() {
		return fmt.Errorf("%w: %d of %d cells reachable with mask %s", ErrDisconnected, reached, size.Area(), mask)
	}
	return nil
}

// Clear empties every cell, keeping weights and neighbor lists.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Filled = false
		g.cells[i].Color = Color{}
	}
}

// Pixels copies the cell colours into a row-major buffer. Empty cells are
// transparent black.
func (g *Grid) Pixels() []Color { return g.AppendPixels(nil) }

// AppendPixels is Pixels reusing dst's storage when it is large enough.
func (g *Grid) AppendPixels(dst []Color) []Color {
	if cap(dst) < len(g.cells) {
		dst = make([]Color, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	for i := range g.cells {
		if g.cells[i].Filled {
			dst[i] = g.cells[i].Color
		} else {
			dst[i] = Color{}
		}
	}
	return dst
}
