// Command sweep runs every combination of algorithm, colour order and seed on
// a small cube and reports frontier statistics and image checksums.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"allcolors/internal/colorspace"
	"allcolors/internal/core"
	"allcolors/internal/generator"
	"allcolors/internal/placement"

	"golang.org/x/sync/errgroup"
)

type scenario struct {
	algo  string
	order colorspace.Order
	seed  int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s/%s/%d", s.algo, s.order, s.seed)
}

type scenarioResult struct {
	scenario
	stats    generator.Stats
	checksum uint64
}

// ErrUnstable is returned when a repeated scenario produced a different image.
var ErrUnstable = errors.New("sweep: same seed produced different images")

func main() {
	colors := flag.Int("colors", 16, "distinct values per channel")
	algos := flag.String("algos", strings.Join(placement.Names(), ","), "comma-separated algorithms")
	orders := flag.String("orders", "rnd,hue", "comma-separated colour orders")
	seeds := flag.Int("seeds", 3, "seeds 1..n per combination")
	bias := flag.String("bias", "weight", "tie-break for equal scores")
	workers := flag.Int("workers", runtime.NumCPU(), "scenarios run concurrently")
	repeat := flag.Bool("repeat", false, "run every scenario twice with a parallel scan and compare")
	verbose := flag.Bool("v", false, "log generator progress")
	flag.Parse()

	if *verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	space, err := colorspace.BestRectangle(*colors)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	scenarios, err := buildScenarios(splitList(*algos), splitList(*orders), *seeds)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	fmt.Printf("Sweeping %d scenarios on %s (%d workers)\n", len(scenarios), space, *workers)

	start := time.Now()
	results, err := sweep(context.Background(), space, *bias, scenarios, *workers, *repeat)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	report(os.Stdout, results)
	fmt.Printf("\nElapsed %s\n", time.Since(start).Round(time.Millisecond))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func buildScenarios(algos, orders []string, seeds int) ([]scenario, error) {
	if seeds <= 0 {
		return nil, fmt.Errorf("seeds must be positive, got %d", seeds)
	}
	var out []scenario
	for _, algo := range algos {
		if _, err := placement.Lookup(algo); err != nil {
			return nil, err
		}
		for _, name := range orders {
			order, err := colorspace.ParseOrder(name)
			if err != nil {
				return nil, err
			}
			for seed := int64(1); seed <= int64(seeds); seed++ {
				out = append(out, scenario{algo: algo, order: order, seed: seed})
			}
		}
	}
	return out, nil
}

// sweep runs the scenarios on a bounded set of goroutines and returns the
// results sorted by algorithm, order and seed.
func sweep(ctx context.Context, space colorspace.Space, bias string, scenarios []scenario, workers int, repeat bool) ([]scenarioResult, error) {
	results := make([]scenarioResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := runScenario(ctx, space, bias, sc, 1)
			if err != nil {
				return fmt.Errorf("%s: %w", sc, err)
			}
			if repeat {
				again, err := runScenario(ctx, space, bias, sc, 2)
				if err != nil {
					return fmt.Errorf("%s: %w", sc, err)
				}
				if again.checksum != res.checksum {
					return fmt.Errorf("%s: %w", sc, ErrUnstable)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.algo != b.algo {
			return a.algo < b.algo
		}
		if a.order != b.order {
			return a.order.String() < b.order.String()
		}
		return a.seed < b.seed
	})
	return results, nil
}

func runScenario(ctx context.Context, space colorspace.Space, bias string, sc scenario, scanWorkers int) (scenarioResult, error) {
	gen, err := generator.New(generator.Options{
		Space:     space,
		Start:     space.MidPoint(),
		Mask:      core.MaskAll,
		Seed:      sc.seed,
		Order:     sc.order,
		Algorithm: sc.algo,
		Bias:      bias,
		Workers:   scanWorkers,
		Floor:     64,
	})
	if err != nil {
		return scenarioResult{}, err
	}
	defer gen.Close()
	res, err := gen.Run(ctx)
	if err != nil {
		return scenarioResult{}, err
	}
	if err := generator.Verify(res, space); err != nil {
		return scenarioResult{}, err
	}
	return scenarioResult{scenario: sc, stats: res.Stats, checksum: res.Checksum()}, nil
}

func report(w io.Writer, results []scenarioResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nalgo\torder\tseed\tpeak frontier\tcompactions\telapsed\tchecksum")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%016x\n",
			r.algo, r.order, r.seed, r.stats.PeakFrontier, r.stats.Compactions,
			r.stats.Elapsed.Round(time.Millisecond), r.checksum)
	}
	tw.Flush()
}
