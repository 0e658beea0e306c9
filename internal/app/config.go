package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"allcolors/internal/colorspace"
	"allcolors/internal/core"
	"allcolors/internal/generator"
)

// ErrConfig is wrapped by every validation error from Config.Options.
var ErrConfig = errors.New("config")

// Config represents the command-line parameters shared by the commands.
type Config struct {
	Colors    int
	Width     int
	Height    int
	Fit       string
	StartX    int
	StartY    int
	Frames    int
	Seed      int64
	Neighbors string
	Order     string
	Algo      string
	Bias      string
	Workers   int
	Batch     int

	Out    string
	Verify bool

	Scale int
	TPS   int

	Verbose bool
	Quiet   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Colors:    64,
		StartX:    -1,
		StartY:    -1,
		Neighbors: core.MaskAll.String(),
		Order:     "rnd",
		Algo:      "one",
		Bias:      "weight",
		Batch:     generator.DefaultBatch,
		Out:       "allcolors.png",
		Scale:     1,
		TPS:       60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Colors, "colors", c.Colors, "distinct values per channel, 1..256")
	fs.IntVar(&c.Width, "w", c.Width, "image width; 0 picks a rectangle for -colors")
	fs.IntVar(&c.Height, "h", c.Height, "image height; 0 picks a rectangle for -colors")
	fs.StringVar(&c.Fit, "fit", c.Fit, "WxH area to fill as closely as possible; overrides -colors, -w and -h")
	fs.IntVar(&c.StartX, "startx", c.StartX, "x of the first colour, -1 for the midpoint")
	fs.IntVar(&c.StartY, "starty", c.StartY, "y of the first colour, -1 for the midpoint")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frame count (recorded only)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "shuffle seed, 0 for entropy")
	fs.StringVar(&c.Neighbors, "neighbors", c.Neighbors, "eight 0/1 flags for N NE E SE S SW W NW")
	fs.StringVar(&c.Order, "order", c.Order, "colour order: rnd, hue or hue-N")
	fs.StringVar(&c.Algo, "algo", c.Algo, "placement algorithm: one, avg, avgsq or min")
	fs.StringVar(&c.Bias, "bias", c.Bias, "tie-break for equal scores: weight or random")
	fs.IntVar(&c.Workers, "workers", c.Workers, "scan goroutines, 0 for GOMAXPROCS")
	fs.IntVar(&c.Batch, "batch", c.Batch, "colours placed per viewer frame")
	fs.StringVar(&c.Out, "out", c.Out, "output file; .png .bmp .tif .qoi or .rgb.zst")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "check that every colour appears exactly once")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "disable logging")
}

// Space resolves the colour space from -fit, or -colors with -w and -h.
func (c *Config) Space() (colorspace.Space, error) {
	if c.Fit != "" {
		w, h, err := ParseSize(c.Fit)
		if err != nil {
			return colorspace.Space{}, err
		}
		return colorspace.BestFit(w, h)
	}
	switch {
	case c.Width == 0 && c.Height == 0:
		return colorspace.BestRectangle(c.Colors)
	case c.Width <= 0 || c.Height <= 0:
		return colorspace.Space{}, fmt.Errorf("%w: set both -w and -h, or neither", ErrConfig)
	}
	return colorspace.New(c.Colors, c.Width, c.Height)
}

// Options validates the configuration and converts it for the generator.
func (c *Config) Options() (generator.Options, error) {
	space, err := c.Space()
	if err != nil {
		return generator.Options{}, err
	}
	mask, err := core.ParseMask(c.Neighbors)
	if err != nil {
		return generator.Options{}, err
	}
	if err := mask.Validate(); err != nil {
		return generator.Options{}, err
	}
	order, err := colorspace.ParseOrder(c.Order)
	if err != nil {
		return generator.Options{}, err
	}
	start := space.MidPoint()
	if c.StartX >= 0 {
		start.X = c.StartX
	}
	if c.StartY >= 0 {
		start.Y = c.StartY
	}
	if c.StartX < -1 || c.StartY < -1 || start.X >= space.Width() || start.Y >= space.Height() {
		return generator.Options{}, fmt.Errorf("%w: start (%d,%d) outside %s", core.ErrStartOutOfBounds, c.StartX, c.StartY, space.Size())
	}
	if c.Scale <= 0 {
		return generator.Options{}, fmt.Errorf("%w: -scale must be positive, got %d", ErrConfig, c.Scale)
	}
	if c.Batch <= 0 {
		return generator.Options{}, fmt.Errorf("%w: -batch must be positive, got %d", ErrConfig, c.Batch)
	}
	opts := generator.Options{
		Space:     space,
		Start:     start,
		Mask:      mask,
		Seed:      c.Seed,
		Order:     order,
		Algorithm: c.Algo,
		Bias:      c.Bias,
		Workers:   c.Workers,
		Batch:     c.Batch,
		Frames:    c.Frames,
	}
	if err := opts.Validate(); err != nil {
		return generator.Options{}, err
	}
	return opts, nil
}

// Logger builds the logger selected by -v and -quiet. It returns nil when
// logging is disabled, which core.SetLogger treats as silent.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if c.Quiet {
		return nil
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseSize parses "WxH".
func ParseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if ok {
		w, err = strconv.Atoi(ws)
		if err == nil {
			h, err = strconv.Atoi(hs)
		}
	}
	if !ok || err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: size must be WxH, got %q", ErrConfig, s)
	}
	return w, h, nil
}
