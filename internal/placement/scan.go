package placement

import (
	"allcolors/internal/frontier"
	"allcolors/internal/parallel"
)

// DefaultFloor is the minimum number of slots a scan worker receives.
const DefaultFloor = 256

// candidate is a scored frontier cell. id == frontier.Hole means absent.
type candidate struct {
	id    int32
	score int
	key   uint64
}

var absent = candidate{id: frontier.Hole}

func (c candidate) present() bool { return c.id != frontier.Hole }

// beats orders candidates: present before absent, then lower score, then
// lower bias key, then lower id. The order is total, so the reduction result
// does not depend on how the range was split.
func (c candidate) beats(o candidate) bool {
	if !o.present() {
		return c.present()
	}
	if !c.present() {
		return false
	}
	if c.score != o.score {
		return c.score < o.score
	}
	if c.key != o.key {
		return c.key < o.key
	}
	return c.id < o.id
}

// scanner runs a fold over [0, end) in contiguous chunks on the pool and
// reduces the per-chunk winners.
type scanner struct {
	pool  *parallel.WorkerPool
	floor int

	ranges  []parallel.Range
	results []candidate
	work    []func()
}

func (s *scanner) min(end int, fold func(lo, hi int) candidate) candidate {
	if s.pool == nil || end <= s.floor {
		return fold(0, end)
	}
	s.ranges = parallel.Split(s.ranges, end, s.floor, s.pool.Workers())
	if len(s.ranges) == 1 {
		return fold(0, end)
	}
	if cap(s.results) < len(s.ranges) {
		s.results = make([]candidate, len(s.ranges))
	}
	s.results = s.results[:len(s.ranges)]
	s.work = s.work[:0]
	for i, r := range s.ranges {
		i, r := i, r
		s.work = append(s.work, func() { s.results[i] = fold(r.Lo, r.Hi) })
	}
	s.pool.ExecuteAll(s.work)

	best := absent
	for _, c := range s.results {
		if c.beats(best) {
			best = c
		}
	}
	return best
}
