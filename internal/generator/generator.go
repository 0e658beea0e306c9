// Package generator drives a complete run: it builds the colour sequence and
// the grid from Options and feeds the colours one by one to a placement
// strategy until every cell is filled.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"allcolors/internal/core"
	"allcolors/internal/parallel"
	"allcolors/internal/placement"
	rng "allcolors/pkg/core"
)

// Stats summarises a run.
type Stats struct {
	Placed       int
	PeakFrontier int
	Compactions  int
	Elapsed      time.Duration
}

// Result is a finished image in row-major order.
type Result struct {
	Width, Height int
	Pixels        []core.Color
	Stats         Stats
}

// Generator owns the state of one run. It implements core.Sim so the viewer
// can advance it a batch at a time.
type Generator struct {
	opts Options

	shuffler *rng.Shuffler
	colors   []core.Color
	grid     *core.Grid
	alg      placement.Algorithm
	pool     *parallel.WorkerPool

	next     int
	stats    Stats
	started  time.Time
	progress *core.FixedStep
}

// New validates opts and prepares a run seeded with opts.Seed.
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := core.CheckStart(opts.Space.Size(), opts.Mask, opts.Start); err != nil {
		return nil, err
	}

	g := &Generator{opts: opts}
	if opts.Workers != 1 {
		g.pool = parallel.NewWorkerPool(opts.Workers)
	}
	if err := g.reset(opts.Seed); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// reset rebuilds the sequence, grid and strategy. The shuffler is consumed
// in a fixed order: colour order first, then grid weights, then the random
// bias salts during the run.
func (g *Generator) reset(seed int64) error {
	log := core.Logger()
	o := g.opts

	g.shuffler = rng.NewShuffler(seed)
	g.opts.Seed = seed

	setup := time.Now()
	g.colors = o.Space.Colors()
	o.Order.Apply(g.colors, g.shuffler)
	size := o.Space.Size()
	g.grid = core.NewGrid(size.W, size.H, o.Mask, g.shuffler)

	bias, err := placement.NewBias(o.Bias, g.grid, g.shuffler)
	if err != nil {
		return err
	}
	alg, err := placement.New(o.Algorithm, placement.Env{
		Grid:  g.grid,
		Start: g.grid.Index(o.Start.X, o.Start.Y),
		Pool:  g.pool,
		Bias:  bias,
		Floor: o.Floor,
	})
	if err != nil {
		return err
	}
	g.alg = alg
	g.next = 0
	g.stats = Stats{}
	g.progress = core.NewInterval(o.Progress)
	g.started = time.Now()

	log.Debug("generator: setup",
		slog.Duration("elapsed", time.Since(setup)),
		slog.Int("colors", len(g.colors)))
	log.Info("generator: start",
		slog.String("space", o.Space.String()),
		slog.String("algo", alg.Name()),
		slog.String("order", o.Order.String()),
		slog.String("bias", bias.Name()),
		slog.String("mask", o.Mask.String()),
		slog.String("start", o.Start.String()),
		slog.Int64("seed", seed),
		slog.Bool("seeded", g.shuffler.Seeded()))
	return nil
}

// Name identifies the run in window titles and reports.
func (g *Generator) Name() string { return "allcolors " + g.opts.Algorithm }

// Size returns the image dimensions.
func (g *Generator) Size() core.Size { return g.opts.Space.Size() }

// Options returns the effective options, including the last reset seed.
func (g *Generator) Options() Options { return g.opts }

// Grid exposes the cells for inspection.
func (g *Generator) Grid() *core.Grid { return g.grid }

// Colors returns the placement sequence.
func (g *Generator) Colors() []core.Color { return g.colors }

// Reset restarts the run with seed.
func (g *Generator) Reset(seed int64) {
	if err := g.reset(seed); err != nil {
		// Options were validated in New; only the seed changed.
		panic(fmt.Sprintf("generator: reset: %v", err))
	}
}

// Done reports whether every colour has been placed.
func (g *Generator) Done() bool { return g.next == len(g.colors) }

// Progress returns the number of placed colours and the total.
func (g *Generator) Progress() (placed, total int) { return g.next, len(g.colors) }

// Stats returns the statistics so far.
func (g *Generator) Stats() Stats {
	s := g.stats
	s.Placed = g.next
	if !g.Done() {
		s.Elapsed = time.Since(g.started)
	}
	return s
}

// Step places the next batch of colours.
func (g *Generator) Step() {
	for i := 0; i < g.opts.Batch && !g.Done(); i++ {
		g.place()
	}
}

// Run places every remaining colour and returns the image. It checks ctx
// between compaction intervals.
func (g *Generator) Run(ctx context.Context) (Result, error) {
	for !g.Done() {
		if g.next%g.opts.CompactEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("generator: stopped after %d of %d colours: %w", g.next, len(g.colors), err)
			}
		}
		g.place()
	}
	return g.Result(), nil
}

// Result snapshots the grid. Before Done the image has transparent holes.
func (g *Generator) Result() Result {
	size := g.Size()
	return Result{Width: size.W, Height: size.H, Pixels: g.grid.Pixels(), Stats: g.Stats()}
}

// Pixels returns the current image in row-major order.
func (g *Generator) Pixels() []core.Color { return g.grid.Pixels() }

// AppendPixels is Pixels reusing dst's storage.
func (g *Generator) AppendPixels(dst []core.Color) []core.Color { return g.grid.AppendPixels(dst) }

// FrontierCells appends the ids currently tracked by the strategy to dst.
func (g *Generator) FrontierCells(dst []int32) []int32 {
	dst = dst[:0]
	for _, id := range g.alg.Frontier().Slots() {
		if id >= 0 {
			dst = append(dst, id)
		}
	}
	return dst
}

// Close stops the scan workers.
func (g *Generator) Close() {
	if g.pool != nil {
		g.pool.Close()
		g.pool = nil
	}
}

func (g *Generator) place() {
	log := core.Logger()
	g.alg.Place(g.colors[g.next])
	g.next++

	f := g.alg.Frontier()
	if n := f.Len(); n > g.stats.PeakFrontier {
		g.stats.PeakFrontier = n
	}
	if g.next%g.opts.CompactEvery == 0 {
		end := f.End()
		if f.Compact() {
			g.stats.Compactions = f.Compactions()
			log.Debug("generator: compacted frontier",
				slog.Int("end", end),
				slog.Int("live", f.Len()),
				slog.Int("cap", f.Cap()))
		}
	}
	if g.progress.ShouldStep() {
		log.Info("generator: progress",
			slog.Int("placed", g.next),
			slog.Int("total", len(g.colors)),
			slog.Int("frontier", f.Len()),
			slog.Duration("elapsed", time.Since(g.started)))
	}
	if g.Done() {
		g.finish()
	}
}

func (g *Generator) finish() {
	f := g.alg.Frontier()
	if f.Len() != 0 {
		panic(fmt.Sprintf("generator: %d cells left in the frontier after the last colour", f.Len()))
	}
	g.stats.Compactions = f.Compactions()
	g.stats.Elapsed = time.Since(g.started)
	core.Logger().Info("generator: done",
		slog.Int("placed", g.next),
		slog.Int("peak_frontier", g.stats.PeakFrontier),
		slog.Int("compactions", g.stats.Compactions),
		slog.Duration("elapsed", g.stats.Elapsed))
}
