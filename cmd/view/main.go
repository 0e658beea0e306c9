//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"allcolors/internal/app"
	"allcolors/internal/core"
	"allcolors/internal/generator"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Out = ""
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	core.SetLogger(cfg.Logger(os.Stderr))

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("view: %v", err)
	}
	gen, err := generator.New(opts)
	if err != nil {
		log.Fatalf("view: %v", err)
	}
	defer gen.Close()

	game := app.New(gen, cfg.Scale, cfg.Out)
	size := gen.Size()

	ebiten.SetWindowTitle("allcolors - " + opts.Space.String() + " " + opts.Algorithm)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.Layout(size.W*cfg.Scale, size.H*cfg.Scale))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
