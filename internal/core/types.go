package core

import "fmt"

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Area returns W*H.
func (s Size) Area() int { return s.W * s.H }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Coord is an integer grid position.
type Coord struct {
	X, Y int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Color is an 8-bit-per-channel colour. Alpha is carried for output but never
// takes part in distance computations.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xff} }

// Dist returns the squared Euclidean RGB distance between c and o.
func (c Color) Dist(o Color) int {
	r := int(c.R) - int(o.R)
	g := int(c.G) - int(o.G)
	b := int(c.B) - int(o.B)
	return r*r + g*g + b*b
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = uint32(c.A)
	a |= a << 8
	return
}

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Sim is the contract the viewer drives: a grid that advances in steps.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Done() bool
	Pixels() []Color
}
