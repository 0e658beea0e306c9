// Command allcolors renders an image that uses every colour of a colour cube
// exactly once and writes it to a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"allcolors/internal/app"
	"allcolors/internal/core"
	"allcolors/internal/generator"
	"allcolors/internal/render"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	core.SetLogger(cfg.Logger(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("allcolors: %v", err)
	}
}

func run(ctx context.Context, cfg *app.Config) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if _, err := render.FormatFor(cfg.Out); err != nil {
		return err
	}

	gen, err := generator.New(opts)
	if err != nil {
		return err
	}
	defer gen.Close()

	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if cfg.Verify {
		if err := generator.Verify(res, opts.Space); err != nil {
			return err
		}
		core.Logger().Info("verified", slog.Int("colors", len(res.Pixels)))
	}
	if err := render.Save(cfg.Out, res.Width, res.Height, res.Pixels); err != nil {
		return err
	}
	fmt.Printf("%s: %s %s seed=%d in %s\n", cfg.Out, opts.Space, opts.Algorithm, gen.Options().Seed, res.Stats.Elapsed.Round(time.Millisecond))
	return nil
}
