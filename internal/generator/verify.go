package generator

import (
	"errors"
	"fmt"
	"hash/fnv"
	"slices"

	"allcolors/internal/colorspace"
	"allcolors/internal/core"
)

// ErrIncomplete is returned by Verify when the image does not hold every
// colour of the space exactly once.
var ErrIncomplete = errors.New("generator: image is not a permutation of the colour space")

// Verify checks that r uses every colour of space exactly once.
func Verify(r Result, space colorspace.Space) error {
	if r.Width != space.Width() || r.Height != space.Height() {
		return fmt.Errorf("%w: image %dx%d, space %s", ErrIncomplete, r.Width, r.Height, space.Size())
	}
	got := packed(r.Pixels)
	want := packed(space.Colors())
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d pixels for %d colours", ErrIncomplete, len(got), len(want))
	}
	slices.Sort(got)
	slices.Sort(want)
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("%w: first mismatch %06x, expected %06x", ErrIncomplete, got[i]&0xffffff, want[i]&0xffffff)
		}
	}
	return nil
}

// packed folds alpha in so transparent holes never match a real colour.
func packed(cs []core.Color) []uint32 {
	out := make([]uint32, len(cs))
	for i, c := range cs {
		out[i] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	return out
}

// Checksum hashes the pixels in row-major order.
func (r Result) Checksum() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 3*len(r.Pixels))
	for _, c := range r.Pixels {
		buf = append(buf, c.R, c.G, c.B)
	}
	h.Write(buf)
	return h.Sum64()
}
