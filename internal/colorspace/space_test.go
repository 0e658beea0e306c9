package colorspace

import (
	"errors"
	"slices"
	"testing"

	"allcolors/internal/core"
	rng "allcolors/pkg/core"

	"github.com/lucasb-eyer/go-colorful"
)

func TestNewRejectsMismatch(t *testing.T) {
	if _, err := New(4, 8, 8); err != nil {
		t.Fatalf("valid space rejected: %v", err)
	}
	if _, err := New(4, 8, 9); !errors.Is(err, ErrDimensions) {
		t.Fatalf("expected ErrDimensions, got %v", err)
	}
	if _, err := New(0, 1, 1); !errors.Is(err, ErrDepthRange) {
		t.Fatalf("expected ErrDepthRange, got %v", err)
	}
	if _, err := New(257, 4112, 4112); !errors.Is(err, ErrDepthRange) {
		t.Fatalf("expected ErrDepthRange, got %v", err)
	}
	if _, err := New(1, 0, 1); !errors.Is(err, ErrDimensions) {
		t.Fatalf("expected ErrDimensions for zero width, got %v", err)
	}
}

func TestColorsDepthFour(t *testing.T) {
	s, err := New(4, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	colors := s.Colors()
	if len(colors) != 64 {
		t.Fatalf("expected 64 colours, got %d", len(colors))
	}
	seen := make(map[core.Color]bool)
	for _, c := range colors {
		for _, v := range []uint8{c.R, c.G, c.B} {
			if v%85 != 0 {
				t.Fatalf("channel value %d is not a multiple of 85", v)
			}
		}
		if c.A != 0xff {
			t.Fatalf("colour %s is not opaque", c)
		}
		if seen[c] {
			t.Fatalf("duplicate colour %s", c)
		}
		seen[c] = true
	}
	if colors[0] != core.RGB(0, 0, 0) || colors[63] != core.RGB(255, 255, 255) || colors[1] != core.RGB(0, 0, 85) {
		t.Fatalf("unexpected enumeration order: %s %s %s", colors[0], colors[1], colors[63])
	}
}

func TestColorsDepthOne(t *testing.T) {
	s, err := New(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Colors(); len(got) != 1 {
		t.Fatalf("depth 1 must yield one colour, got %d", len(got))
	}
}

func TestBestRectangle(t *testing.T) {
	cases := []struct {
		depth, w, h int
	}{
		{1, 1, 1},
		{4, 8, 8},
		{8, 32, 16},
		{16, 64, 64},
		{32, 256, 128},
		{64, 512, 512},
		{128, 2048, 1024},
		{256, 4096, 4096},
	}
	for _, tc := range cases {
		s, err := BestRectangle(tc.depth)
		if err != nil {
			t.Fatalf("depth %d: %v", tc.depth, err)
		}
		if s.Width() != tc.w || s.Height() != tc.h {
			t.Fatalf("depth %d: got %dx%d, expected %dx%d", tc.depth, s.Width(), s.Height(), tc.w, tc.h)
		}
	}
	for depth := 1; depth <= 64; depth++ {
		s, err := BestRectangle(depth)
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if s.Width()*s.Height() != depth*depth*depth {
			t.Fatalf("depth %d: %dx%d does not hold depth³", depth, s.Width(), s.Height())
		}
	}
}

func TestBestFitExact(t *testing.T) {
	s, err := BestFit(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 4 || s.Width() != 8 || s.Height() != 8 {
		t.Fatalf("got %s", s)
	}
}

func TestBestFitApproximate(t *testing.T) {
	s, err := BestFit(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 4 || s.Width() != 8 || s.Height() != 8 {
		t.Fatalf("10x10 should settle on 4 colors 8x8, got %s", s)
	}

	for _, req := range []core.Size{{W: 1920, H: 1080}, {W: 300, H: 2000}, {W: 640, H: 480}} {
		s, err := BestFit(req.W, req.H)
		if err != nil {
			t.Fatalf("%s: %v", req, err)
		}
		if s.Width()*s.Height() != s.Len() {
			t.Fatalf("%s: %s breaks the cube invariant", req, s)
		}
		if s.Width() > req.W || s.Height() > req.H {
			t.Fatalf("%s: %s does not fit inside the request", req, s)
		}
		if (req.W > req.H) != (s.Width() > s.Height()) && s.Width() != s.Height() {
			t.Fatalf("%s: orientation flipped to %s", req, s)
		}
	}
}

func TestBestFitErrors(t *testing.T) {
	if _, err := BestFit(0, 10); !errors.Is(err, ErrDimensions) {
		t.Fatalf("expected ErrDimensions, got %v", err)
	}
	if _, err := BestFit(2, 3); !errors.Is(err, ErrNoRectangle) {
		t.Fatalf("expected ErrNoRectangle, got %v", err)
	}
}

func TestAreasAndRanking(t *testing.T) {
	areas, err := Areas(16)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range areas {
		if a.W*a.H != 4096 || a.W > a.H {
			t.Fatalf("bad area %s", a)
		}
	}
	best, _ := BestAreas(16)
	if best[0] != (core.Size{W: 64, H: 64}) {
		t.Fatalf("square should rank first, got %s", best[0])
	}
	if len(best) != len(areas) {
		t.Fatal("ranking must not drop areas")
	}
	if !interesting(6) || !interesting(12) || interesting(8) {
		t.Fatal("interesting() misclassifies")
	}
}

func TestParseOrder(t *testing.T) {
	cases := map[string]Order{
		"rnd":     {Kind: OrderRandom},
		"random":  {Kind: OrderRandom},
		"hue":     {Kind: OrderHue},
		"hue-120": {Kind: OrderHue, HueShift: 120},
		"hue-360": {Kind: OrderHue, HueShift: 0},
	}
	for in, want := range cases {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Fatalf("ParseOrder(%q) = %+v, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "hue-", "hue-400", "sorted"} {
		if _, err := ParseOrder(in); !errors.Is(err, ErrUnknownOrder) {
			t.Fatalf("ParseOrder(%q) should fail, got %v", in, err)
		}
	}
}

func TestHueOrderSorted(t *testing.T) {
	s, _ := New(4, 8, 8)
	colors := s.Colors()
	Order{Kind: OrderHue, HueShift: 90}.Apply(colors, rng.NewShuffler(1))

	prev := -1.0
	for _, c := range colors {
		h, _, _ := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsl()
		h += 90
		for h >= 360 {
			h -= 360
		}
		if h+1e-9 < prev {
			t.Fatalf("hue order broken at %s: %f after %f", c, h, prev)
		}
		prev = h
	}

	sorted := slices.Clone(colors)
	key := func(c core.Color) int { return int(c.R)<<16 | int(c.G)<<8 | int(c.B) }
	slices.SortFunc(sorted, func(a, b core.Color) int { return key(a) - key(b) })
	if !slices.Equal(sorted, s.Colors()) {
		t.Fatal("hue ordering must be a permutation of the colour set")
	}
}

func TestRandomOrderDeterministic(t *testing.T) {
	s, _ := New(4, 8, 8)
	a, b := s.Colors(), s.Colors()
	Order{}.Apply(a, rng.NewShuffler(147))
	Order{}.Apply(b, rng.NewShuffler(147))
	if !slices.Equal(a, b) {
		t.Fatal("equal seeds must give equal colour orders")
	}
	if slices.Equal(a, s.Colors()) {
		t.Fatal("random order left the colours unshuffled")
	}
}
