// Package colorspace derives grid dimensions whose pixel count equals the
// cube of a colour depth and generates the colours to place.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"allcolors/internal/core"
)

// MaxDepth is the largest supported number of values per channel.
const MaxDepth = 256

// MaxSide bounds a requested width or height.
const MaxSide = math.MaxUint16

var (
	// ErrDepthRange is returned for a depth outside [1, 256].
	ErrDepthRange = errors.New("colorspace: depth must be in [1, 256]")
	// ErrDimensions is returned when width*height differs from depth³ or a side is out of range.
	ErrDimensions = errors.New("colorspace: invalid dimensions")
	// ErrNoRectangle is returned when no rectangle can hold the colours.
	ErrNoRectangle = errors.New("colorspace: no rectangle fits")
)

// Space is a (depth, width, height) triple with depth³ == width*height.
type Space struct {
	depth  int
	width  int
	height int
}

// New validates and returns a Space.
func New(depth, width, height int) (Space, error) {
	if err := checkDepth(depth); err != nil {
		return Space{}, err
	}
	if err := checkSide(width, "width"); err != nil {
		return Space{}, err
	}
	if err := checkSide(height, "height"); err != nil {
		return Space{}, err
	}
	if width*height != depth*depth*depth {
		return Space{}, fmt.Errorf("%w: %dx%d holds %d pixels, depth %d needs %d",
			ErrDimensions, width, height, width*height, depth, depth*depth*depth)
	}
	return Space{depth: depth, width: width, height: height}, nil
}

func checkDepth(depth int) error {
	if depth < 1 || depth > MaxDepth {
		return fmt.Errorf("%w: got %d", ErrDepthRange, depth)
	}
	return nil
}

func checkSide(v int, name string) error {
	if v < 1 || v > MaxSide {
		return fmt.Errorf("%w: %s %d must be in [1, %d]", ErrDimensions, name, v, MaxSide)
	}
	return nil
}

// Depth returns the number of values per channel.
func (s Space) Depth() int { return s.depth }

// Width returns the grid width.
func (s Space) Width() int { return s.width }

// Height returns the grid height.
func (s Space) Height() int { return s.height }

// Size returns the grid dimensions.
func (s Space) Size() core.Size { return core.Size{W: s.width, H: s.height} }

// Len returns the number of colours, depth³.
func (s Space) Len() int { return s.depth * s.depth * s.depth }

// MidPoint returns the centre cell, the default start coordinate.
func (s Space) MidPoint() core.Coord { return core.Coord{X: s.width / 2, Y: s.height / 2} }

func (s Space) String() string {
	return fmt.Sprintf("%d colors %dx%d", s.depth, s.width, s.height)
}

// Colors enumerates every (r, g, b) in [0, depth)³, scaling each channel
// linearly onto [0, 255]. Blue varies fastest.
func (s Space) Colors() []core.Color {
	d := s.depth
	levels := make([]uint8, d)
	for i := range levels {
		if d > 1 {
			levels[i] = uint8(i * 255 / (d - 1))
		}
	}
	out := make([]core.Color, 0, s.Len())
	for r := 0; r < d; r++ {
		for g := 0; g < d; g++ {
			for b := 0; b < d; b++ {
				out = append(out, core.RGB(levels[r], levels[g], levels[b]))
			}
		}
	}
	return out
}

// BestFit returns the space that best fills a width×height area. An exact
// cube is used as is. Otherwise depths 256..2 are tried in turn and the first
// depth whose cube can be arranged inside the area wins; among its factor
// pairs the one closest to the request by |Δw|+|Δh| is chosen, then the
// squarer one, then the narrower one.
func BestFit(width, height int) (Space, error) {
	if err := checkSide(width, "width"); err != nil {
		return Space{}, err
	}
	if err := checkSide(height, "height"); err != nil {
		return Space{}, err
	}
	area := width * height
	if d := cubeRoot(area); d*d*d == area && d <= MaxDepth {
		return Space{depth: d, width: width, height: height}, nil
	}

	for depth := MaxDepth; depth >= 2; depth-- {
		pixels := depth * depth * depth
		if pixels > area {
			continue
		}
		best, ok := core.Size{}, false
		for _, f := range factors(pixels) {
			var size core.Size
			if width <= height {
				if f.W > width || f.H > height {
					continue
				}
				size = f
			} else {
				if f.W > height || f.H > width {
					continue
				}
				size = core.Size{W: f.H, H: f.W}
			}
			if !ok || closer(size, best, width, height) {
				best, ok = size, true
			}
		}
		if ok {
			return Space{depth: depth, width: best.W, height: best.H}, nil
		}
	}
	return Space{}, fmt.Errorf("%w: %dx%d", ErrNoRectangle, width, height)
}

// closer reports whether a beats b as an approximation of w×h.
func closer(a, b core.Size, w, h int) bool {
	da := abs(a.W-w) + abs(a.H-h)
	db := abs(b.W-w) + abs(b.H-h)
	if da != db {
		return da < db
	}
	if sa, sb := abs(a.W-a.H), abs(b.W-b.H); sa != sb {
		return sa < sb
	}
	return a.W < b.W
}

// Square returns the square space for depth, if depth³ is a perfect square.
func Square(depth int) (Space, bool) {
	if checkDepth(depth) != nil {
		return Space{}, false
	}
	pixels := depth * depth * depth
	side := int(math.Sqrt(float64(pixels)))
	for side*side > pixels {
		side--
	}
	for (side+1)*(side+1) <= pixels {
		side++
	}
	if side*side != pixels {
		return Space{}, false
	}
	return Space{depth: depth, width: side, height: side}, true
}

// BestRectangle returns a near-square rectangle for depth. A perfect square
// is preferred; otherwise the smallest power-of-two side whose square covers
// depth³ is tried, backing down one at a time until it divides depth³.
func BestRectangle(depth int) (Space, error) {
	if err := checkDepth(depth); err != nil {
		return Space{}, err
	}
	if s, ok := Square(depth); ok {
		return s, nil
	}
	pixels := depth * depth * depth
	for shift := 0; shift <= 12; shift++ {
		side := 1 << shift
		if side*side < pixels {
			continue
		}
		for ; side > 1; side-- {
			if pixels%side == 0 {
				return Space{depth: depth, width: side, height: pixels / side}, nil
			}
		}
		break
	}
	return Space{}, fmt.Errorf("%w: depth %d", ErrNoRectangle, depth)
}

// Areas lists every factor pair (W <= H) of depth³ with both sides <= 4096.
func Areas(depth int) ([]core.Size, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	var out []core.Size
	for _, f := range factors(depth * depth * depth) {
		if f.W <= 4096 && f.H <= 4096 {
			out = append(out, f)
		}
	}
	return out, nil
}

// BestAreas returns Areas ranked by how pleasant the shape is: squares first,
// then power-of-two sides, then sides that are the sum of two consecutive
// powers of two.
func BestAreas(depth int) ([]core.Size, error) {
	areas, err := Areas(depth)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(areas, func(a, b core.Size) int {
		return areaRank(a) - areaRank(b)
	})
	return areas, nil
}

func areaRank(s core.Size) int {
	w, h := s.W, s.H
	switch {
	case w == h:
		return 0
	case isPow2(w) && isPow2(h):
		return 1
	case isPow2(w) && interesting(h), isPow2(h) && interesting(w):
		return 2
	case isPow2(w), isPow2(h):
		return 3
	case interesting(w) && interesting(h):
		return 4
	case interesting(w), interesting(h):
		return 5
	}
	return 6
}

func isPow2(v int) bool { return v > 0 && bits.OnesCount(uint(v)) == 1 }

// interesting reports whether v == 2^k + 2^(k+1) for some k >= 1.
func interesting(v int) bool {
	for k := 1; ; k++ {
		sum := 1<<k + 1<<(k+1)
		if sum == v {
			return true
		}
		if sum > v {
			return false
		}
	}
}

// factors returns the factor pairs (W <= H) of n in ascending W.
func factors(n int) []core.Size {
	var out []core.Size
	for i := 1; i*i <= n; i++ {
		if n%i == 0 {
			out = append(out, core.Size{W: i, H: n / i})
		}
	}
	return out
}

func cubeRoot(n int) int {
	r := int(math.Round(math.Cbrt(float64(n))))
	for r > 0 && r*r*r > n {
		r--
	}
	for (r+1)*(r+1)*(r+1) <= n {
		r++
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
