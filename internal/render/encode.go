package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"allcolors/internal/core"

	"github.com/klauspost/compress/zstd"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format selects an image encoding.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
	QOI
	// RawZstd is a small header followed by a zstd stream of RGB triplets.
	RawZstd
)

var (
	// ErrUnknownFormat is returned for an unsupported file extension.
	ErrUnknownFormat = errors.New("render: unknown image format")
	// ErrBadRaw is returned when a raw dump has a bad header or size.
	ErrBadRaw = errors.New("render: malformed raw dump")
)

var rawMagic = [4]byte{'A', 'C', 'R', 'G'}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	case QOI:
		return "qoi"
	case RawZstd:
		return "rgb.zst"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".rgb.zst"), strings.HasSuffix(name, ".zst"):
		return RawZstd, nil
	}
	switch filepath.Ext(name) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".qoi":
		return QOI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Encode writes the w×h pixel buffer to out in format f.
func Encode(out io.Writer, f Format, w, h int, pixels []core.Color) error {
	if len(pixels) != w*h {
		return fmt.Errorf("render: %d pixels for %dx%d", len(pixels), w, h)
	}
	switch f {
	case PNG:
		return png.Encode(out, Image(w, h, pixels))
	case BMP:
		return bmp.Encode(out, Image(w, h, pixels))
	case TIFF:
		return tiff.Encode(out, Image(w, h, pixels), &tiff.Options{Compression: tiff.Deflate})
	case QOI:
		return qoi.Encode(out, Image(w, h, pixels))
	case RawZstd:
		return encodeRaw(out, w, h, pixels)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// Save writes the image to path in the format its extension names.
func Save(path string, w, h int, pixels []core.Color) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: close %s: %w", path, cerr)
		}
	}()
	buf := bufio.NewWriter(file)
	if err := Encode(buf, f, w, h, pixels); err != nil {
		return fmt.Errorf("render: encode %s as %s: %w", path, f, err)
	}
	return buf.Flush()
}

func encodeRaw(out io.Writer, w, h int, pixels []core.Color) error {
	var header [12]byte
	copy(header[:4], rawMagic[:])
	binary.LittleEndian.PutUint32(header[4:], uint32(w))
	binary.LittleEndian.PutUint32(header[8:], uint32(h))
	if _, err := out.Write(header[:]); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(out, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return err
	}
	rgb := make([]byte, 0, 3*len(pixels))
	for _, c := range pixels {
		rgb = append(rgb, c.R, c.G, c.B)
	}
	if _, err := enc.Write(rgb); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// DecodeRaw reads a dump written with the RawZstd format.
func DecodeRaw(in io.Reader) (w, h int, pixels []core.Color, err error) {
	var header [12]byte
	if _, err := io.ReadFull(in, header[:]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %v", ErrBadRaw, err)
	}
	if [4]byte(header[:4]) != rawMagic {
		return 0, 0, nil, fmt.Errorf("%w: magic %q", ErrBadRaw, header[:4])
	}
	w = int(binary.LittleEndian.Uint32(header[4:]))
	h = int(binary.LittleEndian.Uint32(header[8:]))

	dec, err := zstd.NewReader(in)
	if err != nil {
		return 0, 0, nil, err
	}
	defer dec.Close()
	rgb, err := io.ReadAll(dec)
	if err != nil {
		return 0, 0, nil, err
	}
	if len(rgb) != 3*w*h {
		return 0, 0, nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBadRaw, len(rgb), w, h)
	}
	pixels = make([]core.Color, w*h)
	for i := range pixels {
		pixels[i] = core.RGB(rgb[3*i], rgb[3*i+1], rgb[3*i+2])
	}
	return w, h, pixels, nil
}
