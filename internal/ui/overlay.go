//go:build ebiten

package ui

import (
	"image/color"

	"allcolors/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type frontierProvider interface {
	FrontierCells(dst []int32) []int32
}

type progressProvider interface {
	Progress() (placed, total int)
}

// FrontierTint is blended over frontier cells when the overlay is on.
var FrontierTint = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Overlay draws optional debugging visuals on top of the image.
type Overlay struct {
	sim          core.Sim
	scale        int
	showFrontier bool
	showProgress bool
	cells        []int32

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showProgress: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the frontier highlight (F) and the progress bar (P).
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showFrontier = !o.showFrontier
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.showProgress = !o.showProgress
	}
}

// Marks returns the cells to tint in the next frame, or nil.
func (o *Overlay) Marks() []int32 {
	if !o.showFrontier {
		return nil
	}
	provider, ok := o.sim.(frontierProvider)
	if !ok {
		return nil
	}
	o.cells = provider.FrontierCells(o.cells)
	return o.cells
}

// Draw renders the progress bar along the bottom edge of the image.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showProgress {
		return
	}
	provider, ok := o.sim.(progressProvider)
	if !ok {
		return
	}
	placed, total := provider.Progress()
	if total == 0 || placed == total {
		return
	}
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	width := float64(size.W * scale)
	bottom := float64(size.H * scale)
	const thickness = 3.0
	o.drawRect(screen, 0, bottom-thickness, width, thickness, color.RGBA{R: 40, G: 40, B: 48, A: 200})
	o.drawRect(screen, 0, bottom-thickness, width*float64(placed)/float64(total), thickness, color.RGBA{R: 90, G: 200, B: 120, A: 230})
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
