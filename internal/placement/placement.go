// Package placement holds the strategies that decide where each incoming
// colour goes.
//
// Every strategy keeps a frontier of candidate cells, scores the whole
// frontier for the incoming colour in parallel, fills the winning cell and
// then updates the frontier around it. The first placement always goes to
// the start cell.
package placement

import (
	"errors"
	"fmt"
	"sort"

	"allcolors/internal/core"
	"allcolors/internal/parallel"
)

// ErrUnknownAlgorithm is returned for an unregistered algorithm name.
var ErrUnknownAlgorithm = errors.New("placement: unknown algorithm")

// Frontier is the read view of an algorithm's candidate set.
type Frontier interface {
	Len() int
	End() int
	Cap() int
	Compact() bool
	Compactions() int
	Slots() []int32
}

// Algorithm places colours one at a time.
type Algorithm interface {
	Name() string
	// Place fills the best cell for c and returns its id.
	Place(c core.Color) int32
	// Frontier exposes the candidate set for compaction and inspection.
	Frontier() Frontier
}

// Env carries what a strategy needs to run on a grid.
type Env struct {
	Grid  *core.Grid
	Start int32
	// Pool runs the frontier scan. A nil pool scans on the calling goroutine.
	Pool *parallel.WorkerPool
	Bias Bias
	// Floor is the minimum chunk length of a parallel scan.
	Floor int
}

// Factory constructs an Algorithm for an environment.
type Factory func(env Env) Algorithm

var algorithms = map[string]Factory{}

// Register adds a strategy factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	algorithms[name] = f
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownAlgorithm, name, Names())
	}
	return f, nil
}

// New builds the named strategy.
func New(name string, env Env) (Algorithm, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if env.Grid == nil {
		return nil, errors.New("placement: nil grid")
	}
	if env.Bias == nil {
		env.Bias = WeightBias{Grid: env.Grid}
	}
	if env.Floor <= 0 {
		env.Floor = DefaultFloor
	}
	return f(env), nil
}

// placer holds the state shared by every strategy.
type placer struct {
	env    Env
	scan   scanner
	placed int
}

func newPlacer(env Env) placer {
	return placer{env: env, scan: scanner{pool: env.Pool, floor: env.Floor}}
}

// target returns the start cell while nothing has been placed, otherwise the
// cell chosen by pick. An empty frontier after the first placement means the
// bookkeeping lost cells.
func (p *placer) target(live int, pick func() int32) int32 {
	if live > 0 {
		return pick()
	}
	if p.placed != 0 {
		panic(fmt.Sprintf("placement: frontier drained after %d of %d cells", p.placed, p.env.Grid.Len()))
	}
	return p.env.Start
}

// fill stores c and counts the placement.
func (p *placer) fill(id int32, c core.Color) {
	p.env.Grid.Fill(id, c)
	p.placed++
}
