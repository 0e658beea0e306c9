package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"allcolors/internal/core"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testPixels(w, h int) []core.Color {
	out := make([]core.Color, w*h)
	for i := range out {
		out[i] = core.RGB(uint8(i*37), uint8(i*11), uint8(255-i))
	}
	return out
}

func TestFillRGBAKeepsHolesTransparent(t *testing.T) {
	pixels := []core.Color{core.RGB(1, 2, 3), {}}
	buf := make([]byte, 8)
	fillRGBA(buf, pixels)
	want := []byte{1, 2, 3, 255, 0, 0, 0, 0}
	if !slices.Equal(buf, want) {
		t.Fatalf("unexpected buffer %v", buf)
	}
}

func TestMarkRGBABlends(t *testing.T) {
	buf := []byte{0, 100, 200, 255, 10, 10, 10, 255}
	markRGBA(buf, []int32{0, 7}, color.RGBA{R: 200, G: 100, B: 0, A: 255})
	want := []byte{100, 100, 100, 255, 10, 10, 10, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("unexpected buffer %v", buf)
	}
}

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"out.png":         PNG,
		"OUT.PNG":         PNG,
		"a/b/c.bmp":       BMP,
		"x.tif":           TIFF,
		"x.tiff":          TIFF,
		"x.qoi":           QOI,
		"x.rgb.zst":       RawZstd,
		"dump.zst":        RawZstd,
		"/tmp/run-1.qoi":  QOI,
		"weird.name.tiff": TIFF,
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		if err != nil || got != want {
			t.Fatalf("%s: got %s, %v; want %s", path, got, err, want)
		}
	}
	if _, err := FormatFor("out.jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestEncodersPreservePixels(t *testing.T) {
	const w, h = 8, 4
	pixels := testPixels(w, h)
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
		QOI:  func(r *bytes.Reader) (image.Image, error) { return qoi.Decode(r) },
	}
	for f, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, f, w, h, pixels); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		img, err := decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: decode: %v", f, err)
		}
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			t.Fatalf("%s: decoded %v", f, b)
		}
		for i, want := range pixels {
			got := color.NRGBAModel.Convert(img.At(i%w, i/w)).(color.NRGBA)
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Fatalf("%s: pixel %d is %v, want %s", f, i, got, want)
			}
		}
	}
}

func TestRawDump(t *testing.T) {
	const w, h = 16, 8
	pixels := testPixels(w, h)
	var buf bytes.Buffer
	if err := Encode(&buf, RawZstd, w, h, pixels); err != nil {
		t.Fatal(err)
	}
	gw, gh, got, err := DecodeRaw(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if gw != w || gh != h || !slices.Equal(got, pixels) {
		t.Fatalf("raw dump changed the image: %dx%d", gw, gh)
	}

	if _, _, _, err := DecodeRaw(bytes.NewReader([]byte("nope, not a dump"))); !errors.Is(err, ErrBadRaw) {
		t.Fatalf("expected ErrBadRaw, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	pixels := testPixels(4, 4)
	path := filepath.Join(dir, "out.png")
	if err := Save(path, 4, 4, pixels); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("nothing written: %v", err)
	}
	if err := Save(filepath.Join(dir, "out.gif"), 4, 4, pixels); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Save(filepath.Join(dir, "short.png"), 4, 5, pixels); err == nil {
		t.Fatal("expected a size mismatch error")
	}
}
