package generator

import (
	"errors"
	"fmt"
	"time"

	"allcolors/internal/colorspace"
	"allcolors/internal/core"
	"allcolors/internal/placement"
)

// Defaults used when the corresponding option is zero.
const (
	DefaultCompactEvery = 1024
	DefaultBatch        = 1024
	DefaultProgress     = 2 * time.Second
)

// ErrNoSpace is returned when Options carries no colour space.
var ErrNoSpace = errors.New("generator: colour space not set")

// Options is the value object a run is built from. Fields left at their zero
// value fall back to the defaults above; Start has no default and must be set.
type Options struct {
	Space colorspace.Space
	Start core.Coord
	Mask  core.Mask
	Seed  int64
	Order colorspace.Order

	Algorithm string
	Bias      string

	// Workers sizes the scan pool. 0 uses GOMAXPROCS, 1 scans on the driver.
	Workers int
	// Floor is the smallest chunk a scan worker receives.
	Floor int
	// CompactEvery is the number of placements between frontier compactions.
	CompactEvery int
	// Batch is the number of colours placed per Step.
	Batch int
	// Frames is recorded with the run parameters but produces no output.
	Frames int
	// Progress is the interval between progress log lines.
	Progress time.Duration
}

// DefaultOptions returns a run over every 6-bit-per-channel colour on a
// 512x512 image, started at its midpoint.
func DefaultOptions() Options {
	space, err := colorspace.BestRectangle(64)
	if err != nil {
		panic(err)
	}
	return Options{
		Space:     space,
		Start:     space.MidPoint(),
		Mask:      core.MaskAll,
		Algorithm: "one",
		Bias:      "weight",
	}
}

func (o Options) withDefaults() Options {
	if o.Mask == 0 {
		o.Mask = core.MaskAll
	}
	if o.Algorithm == "" {
		o.Algorithm = "one"
	}
	if o.Bias == "" {
		o.Bias = "weight"
	}
	if o.Floor <= 0 {
		o.Floor = placement.DefaultFloor
	}
	if o.CompactEvery <= 0 {
		o.CompactEvery = DefaultCompactEvery
	}
	if o.Batch <= 0 {
		o.Batch = DefaultBatch
	}
	if o.Progress <= 0 {
		o.Progress = DefaultProgress
	}
	return o
}

// Validate reports the first configuration error in o.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.Space.Len() == 0 {
		return ErrNoSpace
	}
	if err := o.Mask.Validate(); err != nil {
		return err
	}
	if _, err := placement.Lookup(o.Algorithm); err != nil {
		return err
	}
	switch o.Bias {
	case "weight", "random":
	default:
		return fmt.Errorf("%w: %q", placement.ErrUnknownBias, o.Bias)
	}
	if o.Workers < 0 {
		return fmt.Errorf("generator: workers must be >= 0, got %d", o.Workers)
	}
	if o.Frames < 0 {
		return fmt.Errorf("generator: frames must be >= 0, got %d", o.Frames)
	}
	return nil
}
