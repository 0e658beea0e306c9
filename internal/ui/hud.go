//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"allcolors/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the image.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	setter       core.IntParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

type hudControlState struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupGap       = 8
	controlHeight  = 30
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
)

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
)

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	y := h.drawSnapshot()
	h.layoutControls(y + groupGap)
	h.drawControls()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// drawSnapshot lists every parameter group and returns the last baseline.
func (h *HUD) drawSnapshot() int {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.sim.Name(), face, panelPadding, y, titleColor)
	for _, group := range h.snapshot.Groups {
		y += lineHeight + groupGap
		header := group.Name
		if group.Summary != "" {
			header += "  " + group.Summary
		}
		text.Draw(h.panel, header, face, panelPadding, y, titleColor)
		for _, p := range group.Params {
			y += lineHeight
			text.Draw(h.panel, p.Label, face, panelPadding, y, dimColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, labelColor)
		}
	}
	return y
}

func (h *HUD) refreshControlValues() {
	values := map[string]string{}
	for _, group := range h.snapshot.Groups {
		for _, p := range group.Params {
			values[p.Key] = p.Value
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		v, err := strconv.Atoi(values[state.control.Key])
		state.value, state.hasValue = v, err == nil
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.setter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case pointInRect(px, my, state.minusRect):
			h.adjust(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.adjust(state, 1)
			return
		}
	}
}

func (h *HUD) adjust(state *hudControlState, direction int) {
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	if h.setter.SetIntParameter(state.control.Key, target) {
		state.value = target
	}
}

// target returns the value one step away, or false if the bound is reached.
func (h *HUD) target(state *hudControlState, direction int) (int, bool) {
	if h.setter == nil || !state.hasValue {
		return 0, false
	}
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	target := state.value + direction*step
	if state.value == 1 && direction > 0 && step > 1 {
		target = step
	}
	target = state.control.Clamp(target)
	return target, target != state.value
}

func (h *HUD) layoutControls(top int) {
	for i := range h.controls {
		rowTop := top + i*controlHeight
		buttonY := rowTop + (controlHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = rowTop
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		baseline := state.top + controlHeight/2 + 5
		text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, labelColor)
		_, minusOK := h.target(state, -1)
		_, plusOK := h.target(state, 1)
		h.drawButton(state.minusRect, "-", minusOK)
		h.drawButton(state.plusRect, "+", plusOK)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
