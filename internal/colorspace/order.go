package colorspace

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"allcolors/internal/core"
	rng "allcolors/pkg/core"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownOrder is returned by ParseOrder for unrecognised input.
var ErrUnknownOrder = errors.New("colorspace: order must be rnd, hue or hue-N with N in [0, 360]")

// OrderKind selects how the colour sequence is arranged.
type OrderKind int

const (
	// OrderRandom shuffles the colours.
	OrderRandom OrderKind = iota
	// OrderHue sorts by rotated hue, then lightness.
	OrderHue
)

// Order describes the sequence in which colours are placed.
type Order struct {
	Kind     OrderKind
	HueShift int
}

// ParseOrder accepts "rnd", "random", "hue" and "hue-N".
func ParseOrder(s string) (Order, error) {
	switch s := strings.ToLower(strings.TrimSpace(s)); {
	case s == "rnd" || s == "random":
		return Order{Kind: OrderRandom}, nil
	case s == "hue":
		return Order{Kind: OrderHue}, nil
	case strings.HasPrefix(s, "hue-"):
		shift, err := strconv.Atoi(s[len("hue-"):])
		if err != nil || shift < 0 || shift > 360 {
			return Order{}, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
		}
		return Order{Kind: OrderHue, HueShift: shift % 360}, nil
	}
	return Order{}, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

func (o Order) String() string {
	if o.Kind == OrderHue {
		return fmt.Sprintf("hue-%d", o.HueShift)
	}
	return "rnd"
}

// Apply arranges colors in place. Random order is a Fisher–Yates shuffle;
// hue order sorts by (hue+shift) mod 360, then lightness, with remaining ties
// broken by the shuffler's comparator.
func (o Order) Apply(colors []core.Color, s *rng.Shuffler) {
	if o.Kind != OrderHue {
		rng.Shuffle(s, colors)
		return
	}

	type keyed struct {
		c        core.Color
		hue, lum float64
	}
	keys := make([]keyed, len(colors))
	for i, c := range colors {
		h, _, l := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsl()
		keys[i] = keyed{c: c, hue: math.Mod(h+float64(o.HueShift), 360), lum: l}
	}
	slices.SortStableFunc(keys, func(a, b keyed) int {
		if a.hue != b.hue {
			if a.hue < b.hue {
				return -1
			}
			return 1
		}
		if a.lum != b.lum {
			if a.lum < b.lum {
				return -1
			}
			return 1
		}
		return s.Compare()
	})
	for i := range keys {
		colors[i] = keys[i].c
	}
}
