package placement

import (
	"errors"
	"fmt"

	"allcolors/internal/core"
	rng "allcolors/pkg/core"
)

// ErrUnknownBias is returned for an unrecognised tie-break name.
var ErrUnknownBias = errors.New("placement: bias must be weight or random")

// Bias orders candidates whose scores are equal. A lower key wins.
//
// Begin is called on the driving goroutine once per placement, before the
// scan. Key is called concurrently from scan workers and must only read.
type Bias interface {
	Name() string
	Begin()
	Key(id int32) uint64
}

// NewBias returns the named bias for g.
func NewBias(name string, g *core.Grid, s *rng.Shuffler) (Bias, error) {
	switch name {
	case "", "weight":
		return WeightBias{Grid: g}, nil
	case "random":
		if s == nil {
			return nil, fmt.Errorf("%w: random bias needs a shuffler", ErrUnknownBias)
		}
		return &RandomBias{Grid: g, Shuffler: s}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBias, name)
}

// WeightBias prefers the cell with the lower construction-time weight.
type WeightBias struct {
	Grid *core.Grid
}

func (WeightBias) Name() string { return "weight" }

func (WeightBias) Begin() {}

func (b WeightBias) Key(id int32) uint64 { return uint64(uint32(b.Grid.Weight(id))) }

// RandomBias breaks ties differently on every placement. A salt drawn from
// the shuffler on the driver is mixed with the cell weight, so the order is
// reproducible for a seed and needs no synchronisation during the scan.
type RandomBias struct {
	Grid     *core.Grid
	Shuffler *rng.Shuffler

	salt uint64
}

func (*RandomBias) Name() string { return "random" }

func (b *RandomBias) Begin() { b.salt = b.Shuffler.Uint64() }

func (b *RandomBias) Key(id int32) uint64 {
	return mix64(uint64(uint32(b.Grid.Weight(id))) ^ b.salt)
}

// mix64 is the splitmix64 finalizer. It is a bijection, so distinct weights
// keep distinct keys.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
