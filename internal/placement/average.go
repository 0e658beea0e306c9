package placement

import (
	"fmt"

	"allcolors/internal/core"
	"allcolors/internal/frontier"
)

// Sums aggregates the filled neighbors of an empty cell per channel.
type Sums struct {
	R, G, B       int32
	RSq, GSq, BSq int32
	N             int32
}

// Average returns the truncated per-channel mean.
func (s Sums) Average() core.Color {
	if s.N == 0 {
		return core.Color{}
	}
	return core.RGB(uint8(s.R/s.N), uint8(s.G/s.N), uint8(s.B/s.N))
}

// SquaredError returns Σ(c−x)² over the aggregated colours x, summed over
// the three channels, using Σ(c−x)² = n·c² + Σx² − 2c·Σx.
func (s Sums) SquaredError(c core.Color) int {
	r, g, b := int(c.R), int(c.G), int(c.B)
	n := int(s.N)
	return r*r*n + int(s.RSq) - 2*r*int(s.R) +
		g*g*n + int(s.GSq) - 2*g*int(s.G) +
		b*b*n + int(s.BSq) - 2*b*int(s.B)
}

func gatherSums(g *core.Grid, id int32) Sums {
	var s Sums
	for _, n := range g.Neighbors(id) {
		if !g.Filled(n) {
			continue
		}
		c := g.Color(n)
		r, gr, b := int32(c.R), int32(c.G), int32(c.B)
		s.R += r
		s.G += gr
		s.B += b
		s.RSq += r * r
		s.GSq += gr * gr
		s.BSq += b * b
		s.N++
	}
	return s
}

// Empty keeps a frontier of empty cells that touch at least one filled cell.
// Each entry carries an aggregate of its filled neighbors of type T; score
// ranks an entry for the incoming colour.
type Empty[T any] struct {
	placer
	name   string
	queue  *frontier.Queue[T]
	gather func(g *core.Grid, id int32) T
	score  func(g *core.Grid, id int32, agg T, c core.Color) int
}

func (a *Empty[T]) Name() string { return a.name }

func (a *Empty[T]) Frontier() Frontier { return a.queue }

func (a *Empty[T]) Place(c core.Color) int32 {
	id := a.target(a.queue.Len(), func() int32 { return a.pick(c) })
	a.fill(id, c)
	a.update(id)
	return id
}

func (a *Empty[T]) pick(c core.Color) int32 {
	g := a.env.Grid
	bias := a.env.Bias
	bias.Begin()
	slots := a.queue.Slots()
	values := a.queue.Values()
	best := a.scan.min(len(slots), func(lo, hi int) candidate {
		best := absent
		for i := lo; i < hi; i++ {
			id := slots[i]
			if id == frontier.Hole {
				continue
			}
			score := a.score(g, id, values[i], c)
			if best.present() && score > best.score {
				continue
			}
			if cand := (candidate{id: id, score: score, key: bias.Key(id)}); cand.beats(best) {
				best = cand
			}
		}
		return best
	})
	if !best.present() {
		panic(fmt.Sprintf("placement: scan of %d live cells found no candidate", a.queue.Len()))
	}
	a.queue.TryRemove(best.id)
	return best.id
}

// update refreshes the aggregate of every empty neighbor of the new cell.
func (a *Empty[T]) update(id int32) {
	g := a.env.Grid
	a.queue.TryRemove(id)
	for _, n := range g.Neighbors(id) {
		if g.Filled(n) {
			continue
		}
		a.queue.Put(n, a.gather(g, n))
	}
}

func newEmpty[T any](name string, env Env,
	gather func(*core.Grid, int32) T,
	score func(*core.Grid, int32, T, core.Color) int,
) *Empty[T] {
	return &Empty[T]{
		placer: newPlacer(env),
		name:   name,
		queue:  frontier.New[T](env.Grid.Len(), 4096),
		gather: gather,
		score:  score,
	}
}

// newAverage ranks empty cells by the squared distance between the colour and
// the mean of their filled neighbors. Growth is smooth and blurred.
func newAverage(env Env) Algorithm {
	return newEmpty("avg", env,
		func(g *core.Grid, id int32) core.Color { return gatherSums(g, id).Average() },
		func(_ *core.Grid, _ int32, avg core.Color, c core.Color) int { return c.Dist(avg) },
	)
}

// newAverageSq ranks empty cells by the total squared distance to all their
// filled neighbors. Outliers weigh more than under the mean, so branches of
// different colours keep apart and grow like coral.
func newAverageSq(env Env) Algorithm {
	return newEmpty("avgsq", env,
		gatherSums,
		func(_ *core.Grid, _ int32, s Sums, c core.Color) int { return s.SquaredError(c) },
	)
}

// newMinimum ranks empty cells by the closest filled neighbor. No aggregate
// is stored; the neighbors are read during the scan.
func newMinimum(env Env) Algorithm {
	return newEmpty("min", env,
		func(*core.Grid, int32) struct{} { return struct{}{} },
		func(g *core.Grid, id int32, _ struct{}, c core.Color) int {
			best := -1
			for _, n := range g.Neighbors(id) {
				if !g.Filled(n) {
					continue
				}
				if d := c.Dist(g.Color(n)); best < 0 || d < best {
					best = d
				}
			}
			return best
		},
	)
}

func init() {
	Register("avg", newAverage)
	Register("avgsq", newAverageSq)
	Register("min", newMinimum)
}
