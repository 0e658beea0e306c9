package core

import "math/rand/v2"

// Shuffler is a thin convenience wrapper around math/rand/v2 used for every
// random decision of a run: colour ordering, cell weights and tie-breaks.
// A zero seed draws the PCG state from system entropy.
type Shuffler struct {
	r    *rand.Rand
	seed int64
}

// NewShuffler creates a Shuffler. Equal non-zero seeds produce identical
// sequences.
func NewShuffler(seed int64) *Shuffler {
	if seed == 0 {
		return &Shuffler{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &Shuffler{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Seed returns the seed the shuffler was created with, or 0 for entropy.
func (s *Shuffler) Seed() int64 { return s.seed }

// Seeded reports whether the sequence is reproducible.
func (s *Shuffler) Seeded() bool { return s.seed != 0 }

// Bool returns a random boolean value.
func (s *Shuffler) Bool() bool {
	return s.r.IntN(2) == 1
}

// Compare returns a signed value in [-5, 5], usable as a random comparator.
func (s *Shuffler) Compare() int {
	return s.r.IntN(11) - 5
}

// Next returns a non-negative random int.
func (s *Shuffler) Next() int { return s.r.Int() }

// Uint64 returns a random 64-bit value.
func (s *Shuffler) Uint64() uint64 { return s.r.Uint64() }

// UpTo returns a uniform int in [0, n). It returns 0 when n <= 0.
func (s *Shuffler) UpTo(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// Shuffle permutes xs in place using Fisher–Yates.
func Shuffle[T any](s *Shuffler, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := s.r.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// ShuffleCopy returns a shuffled copy of src using the inside-out variant of
// Fisher–Yates. src is left untouched.
func ShuffleCopy[T any](s *Shuffler, src []T) []T {
	out := make([]T, len(src))
	for i := range src {
		j := s.r.IntN(i + 1)
		if j != i {
			out[i] = out[j]
		}
		out[j] = src[i]
	}
	return out
}

// Perm returns a random permutation of [0, n) as int32 values.
func Perm(s *Shuffler, n int) []int32 {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	Shuffle(s, ids)
	return ids
}
