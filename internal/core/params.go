package core

// Parameter describes a single value of a run shown to the user.
type Parameter struct {
	Key         string
	Label       string
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the current state of a run for the HUD and logs.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that can describe themselves.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// Attrs flattens the snapshot into alternating key/value pairs for slog.
func (s ParameterSnapshot) Attrs() []any {
	var out []any
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out = append(out, p.Key, p.Value)
		}
	}
	return out
}

// ParameterControl describes an integer parameter the HUD can adjust with
// +/- buttons. Bounds are optional.
type ParameterControl struct {
	Key   string
	Label string

	Step int

	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v int) int {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// ParameterControlsProvider exposes adjustable parameters to the HUD.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}
