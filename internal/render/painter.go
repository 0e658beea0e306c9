//go:build ebiten

package render

import (
	"image/color"

	"allcolors/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a colour grid into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads pixels, tints the marked cells and draws the result scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, pixels []core.Color, marks []int32, tint color.RGBA, scale int) {
	if len(pixels) != gp.w*gp.h {
		return
	}
	fillRGBA(gp.buf, pixels)
	if len(marks) > 0 {
		markRGBA(gp.buf, marks, tint)
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
