package generator

import (
	"strconv"
	"time"

	"allcolors/internal/core"
)

// Parameters describes the run for the HUD and for logs.
func (g *Generator) Parameters() core.ParameterSnapshot {
	o := g.opts
	s := g.Stats()
	placed, total := g.Progress()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				strParam("algo", "Algorithm", o.Algorithm, "placement strategy"),
				strParam("order", "Order", o.Order.String(), "colour sequence"),
				strParam("bias", "Bias", o.Bias, "tie-break for equal scores"),
				strParam("seed", "Seed", strconv.FormatInt(o.Seed, 10), "0 draws from entropy"),
				strParam("neighbors", "Neighbors", o.Mask.String(), "N NE E SE S SW W NW"),
			},
		},
		{
			Name: "Space",
			Params: []core.Parameter{
				intParam("colors", "Colours per channel", o.Space.Depth()),
				strParam("size", "Size", o.Space.Size().String(), ""),
				strParam("start", "Start", o.Start.String(), ""),
				intParam("frames", "Frames", o.Frames),
			},
		},
		{
			Name: "Live",
			Params: []core.Parameter{
				intParam("batch", "Colours per step", o.Batch),
				intParam("compact_every", "Compact every", o.CompactEvery),
			},
		},
		{
			Name:    "Progress",
			Summary: strconv.Itoa(placed) + "/" + strconv.Itoa(total),
			Params: []core.Parameter{
				intParam("placed", "Placed", placed),
				intParam("frontier", "Frontier", g.alg.Frontier().Len()),
				intParam("peak_frontier", "Peak frontier", s.PeakFrontier),
				intParam("compactions", "Compactions", s.Compactions),
				strParam("elapsed", "Elapsed", s.Elapsed.Round(time.Millisecond).String(), ""),
			},
		},
	}}
}

func strParam(key, label, value, desc string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: value, Description: desc}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: strconv.Itoa(value)}
}

// ParameterControls lists the settings that can change while a run is live.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "batch", Label: "Colours per step", Step: 256, Min: 1, HasMin: true, Max: 1 << 16, HasMax: true},
		{Key: "compact_every", Label: "Compact every", Step: 256, Min: 1, HasMin: true, Max: 1 << 20, HasMax: true},
	}
}

// SetIntParameter updates a live setting. Neither setting changes the image.
func (g *Generator) SetIntParameter(key string, value int) bool {
	for _, ctrl := range g.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "batch":
			g.opts.Batch = value
		case "compact_every":
			g.opts.CompactEvery = value
		}
		return true
	}
	return false
}
