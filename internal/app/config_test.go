package app

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"allcolors/internal/colorspace"
	"allcolors/internal/core"
	"allcolors/internal/placement"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	opts, err := parse(t).Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Space.Width() != 512 || opts.Space.Height() != 512 {
		t.Fatalf("default space %s", opts.Space)
	}
	if opts.Start != (core.Coord{X: 256, Y: 256}) {
		t.Fatalf("default start %s", opts.Start)
	}
	if opts.Mask != core.MaskAll || opts.Algorithm != "one" || opts.Seed != 0 {
		t.Fatalf("unexpected defaults %+v", opts)
	}
}

func TestFlagsReachOptions(t *testing.T) {
	opts, err := parse(t,
		"-colors", "4", "-w", "8", "-h", "8",
		"-startx", "1", "-starty", "7",
		"-seed", "147", "-neighbors", "10101010",
		"-order", "hue-90", "-algo", "avgsq", "-bias", "random",
		"-workers", "2", "-frames", "10",
	).Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Start != (core.Coord{X: 1, Y: 7}) || opts.Seed != 147 {
		t.Fatalf("start/seed lost: %+v", opts)
	}
	if opts.Mask != core.MaskOrthogonal {
		t.Fatalf("mask %s", opts.Mask)
	}
	if opts.Order != (colorspace.Order{Kind: colorspace.OrderHue, HueShift: 90}) {
		t.Fatalf("order %s", opts.Order)
	}
	if opts.Algorithm != "avgsq" || opts.Bias != "random" || opts.Workers != 2 || opts.Frames != 10 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestFit(t *testing.T) {
	opts, err := parse(t, "-fit", "4096x4096").Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Space.Depth() != 256 {
		t.Fatalf("4096x4096 should hold every 24-bit colour, got %s", opts.Space)
	}
	if _, err := parse(t, "-fit", "wide").Options(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestInvalidConfigs(t *testing.T) {
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"-colors", "0"}, colorspace.ErrDepthRange},
		{[]string{"-colors", "4", "-w", "8", "-h", "9"}, colorspace.ErrDimensions},
		{[]string{"-w", "8"}, ErrConfig},
		{[]string{"-neighbors", "1111"}, core.ErrMaskSyntax},
		{[]string{"-neighbors", "00000000"}, core.ErrMaskEmpty},
		{[]string{"-neighbors", "10000000"}, core.ErrMaskAsymmetric},
		{[]string{"-order", "sorted"}, colorspace.ErrUnknownOrder},
		{[]string{"-algo", "spiral"}, placement.ErrUnknownAlgorithm},
		{[]string{"-bias", "fair"}, placement.ErrUnknownBias},
		{[]string{"-startx", "600"}, core.ErrStartOutOfBounds},
		{[]string{"-scale", "0"}, ErrConfig},
	}
	for _, tc := range cases {
		if _, err := parse(t, tc.args...).Options(); !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	if parse(t, "-quiet").Logger(&buf) != nil {
		t.Fatal("-quiet must disable logging")
	}
	parse(t).Logger(&buf).Debug("hidden")
	parse(t, "-v").Logger(&buf).Debug("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}
