//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"allcolors/internal/core"
	"allcolors/internal/generator"
	"allcolors/internal/render"
	"allcolors/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 280

// hudMinHeight keeps every parameter group visible for small images.
const hudMinHeight = 420

// Game adapts a generator to the ebiten.Game interface.
type Game struct {
	gen     *generator.Generator
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pixels  []core.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	out      string
	saved    bool
}

// New constructs a Game for the provided generator. When out is not empty the
// image is written there once the run completes, and again on W.
func New(gen *generator.Generator, scale int, out string) *Game {
	size := gen.Size()
	return &Game{
		gen:     gen,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(gen, scale),
		hud:     ui.NewHUD(gen, HUDWidth),
		scale:   scale,
		seed:    gen.Options().Seed,
		out:     out,
	}
}

// Reset restarts the run with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.gen.Reset(seed)
	g.tickOnce = false
	g.saved = false
}

// Update handles per-frame logic and advances the run by one batch.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.save()
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	size := g.gen.Size()
	g.hud.Update(size.W * g.scale)

	if (!g.paused || g.tickOnce) && !g.gen.Done() {
		g.gen.Step()
		g.tickOnce = false
		if g.gen.Done() && !g.saved {
			g.save()
		}
	}
	return nil
}

func (g *Game) save() {
	if g.out == "" {
		return
	}
	size := g.gen.Size()
	log := core.Logger()
	if err := render.Save(g.out, size.W, size.H, g.gen.Pixels()); err != nil {
		log.Error("viewer: save failed", slog.String("path", g.out), slog.Any("err", err))
		return
	}
	g.saved = true
	placed, total := g.gen.Progress()
	if placed < total {
		log.Warn("viewer: saved an unfinished image", slog.String("path", g.out), slog.Int("placed", placed), slog.Int("total", total))
		return
	}
	log.Info("viewer: saved", slog.String("path", g.out))
}

// Draw renders the current image, overlays and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.pixels = g.gen.AppendPixels(g.pixels)
	var marks []int32
	if g.overlay != nil {
		marks = g.overlay.Marks()
	}
	g.painter.Blit(screen, g.pixels, marks, ui.FrontierTint, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen, g.gen.Size().W*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.gen.Size()
	h := s.H * g.scale
	if g.hud.Width() > 0 && h < hudMinHeight {
		h = hudMinHeight
	}
	return s.W*g.scale + g.hud.Width(), h
}
