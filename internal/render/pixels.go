package render

import (
	"image"
	"image/color"

	"allcolors/internal/core"
)

// fillRGBA converts cell colours into RGBA bytes in buf. Empty cells carry
// alpha 0 and stay transparent.
func fillRGBA(buf []byte, pixels []core.Color) {
	for i, c := range pixels {
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// markRGBA paints the listed cells with tint, blended halfway over what is
// already in buf.
func markRGBA(buf []byte, ids []int32, tint color.RGBA) {
	for _, id := range ids {
		base := int(id) * 4
		if base < 0 || base+3 >= len(buf) {
			continue
		}
		buf[base+0] = uint8((uint16(buf[base+0]) + uint16(tint.R)) / 2)
		buf[base+1] = uint8((uint16(buf[base+1]) + uint16(tint.G)) / 2)
		buf[base+2] = uint8((uint16(buf[base+2]) + uint16(tint.B)) / 2)
		buf[base+3] = 0xff
	}
}

// Image wraps a row-major pixel buffer of w×h cells as an image.
func Image(w, h int, pixels []core.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(pixels) == w*h {
		fillRGBA(img.Pix, pixels)
	}
	return img
}
