package placement

import (
	"fmt"

	"allcolors/internal/core"
	"allcolors/internal/frontier"
)

// Nearest keeps a frontier of filled cells that still touch an empty cell.
// The filled cell whose colour is closest to the incoming colour wins, and
// the colour goes into one of its empty neighbors. A frontier cell is scored
// by its own colour, not by those around it. Growth follows the
// closest existing colour, which gives sharp, branching structures.
type Nearest struct {
	placer
	queue *frontier.Queue[struct{}]
}

func newNearest(env Env) Algorithm {
	return &Nearest{
		placer: newPlacer(env),
		queue:  frontier.New[struct{}](env.Grid.Len(), 4096),
	}
}

func init() {
	Register("one", newNearest)
}

func (a *Nearest) Name() string { return "one" }

func (a *Nearest) Frontier() Frontier { return a.queue }

func (a *Nearest) Place(c core.Color) int32 {
	id := a.target(a.queue.Len(), func() int32 { return a.pick(c) })
	a.fill(id, c)
	a.update(id)
	return id
}

func (a *Nearest) pick(c core.Color) int32 {
	g := a.env.Grid
	bias := a.env.Bias
	bias.Begin()
	slots := a.queue.Slots()
	best := a.scan.min(len(slots), func(lo, hi int) candidate {
		best := absent
		for i := lo; i < hi; i++ {
			id := slots[i]
			if id == frontier.Hole {
				continue
			}
			score := c.Dist(g.Color(id))
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
	return a.emptyNeighbor(best.id)
}

// emptyNeighbor walks the neighbor list starting at weight mod len and
// returns the first empty cell. The rotation spreads growth evenly over the
// directions while staying deterministic for a fixed weight assignment.
func (a *Nearest) emptyNeighbor(id int32) int32 {
	g := a.env.Grid
	nbrs := g.Neighbors(id)
	n := len(nbrs)
	if n > 0 {
		shift := int(g.Weight(id)) % n
		for i := 0; i < n; i++ {
			if nb := nbrs[(i+shift)%n]; !g.Filled(nb) {
				return nb
			}
		}
	}
	panic(fmt.Sprintf("placement: frontier cell %s has no empty neighbor", g.Pos(id)))
}

// update adds the new cell if it still touches an empty cell and drops
// filled neighbors that no longer do.
func (a *Nearest) update(id int32) {
	g := a.env.Grid
	for _, n := range g.Neighbors(id) {
		if !g.Filled(n) {
			a.queue.TryAdd(id, struct{}{})
			continue
		}
		if !g.HasEmptyNeighbor(n) {
			a.queue.TryRemove(n)
		}
	}
}
