package core

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the eight compass offsets.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var (
	// ErrMaskEmpty is returned for a mask without any direction.
	ErrMaskEmpty = errors.New("core: neighbor mask selects no direction")
	// ErrMaskAsymmetric is returned when a direction is enabled without its opposite.
	ErrMaskAsymmetric = errors.New("core: neighbor mask is not symmetric")
	// ErrMaskSyntax is returned by ParseMask for malformed input.
	ErrMaskSyntax = errors.New("core: neighbor mask must be eight 0/1 characters")
)

// Offset returns the (dx, dy) step of the direction. North is -y.
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	default:
		return -1, -1
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return (d + 4) % 8 }

// Mask selects which directions count as neighbors. Bit i enables Direction(i).
type Mask uint8

const (
	// MaskAll enables all eight directions.
	MaskAll Mask = 0xff
	// MaskOrthogonal enables N, E, S and W.
	MaskOrthogonal = Mask(1<<North | 1<<East | 1<<South | 1<<West)
)

// MaskOf builds a mask from the given directions.
func MaskOf(dirs ...Direction) Mask {
	var m Mask
	for _, d := range dirs {
		m |= 1 << d
	}
	return m
}

// ParseMask parses eight '0'/'1' characters in the order N NE E SE S SW W NW.
func ParseMask(s string) (Mask, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("%w: %q", ErrMaskSyntax, s)
	}
	var m Mask
	for i := 0; i < 8; i++ {
		switch s[i] {
		case '1':
			m |= 1 << i
		case '0':
		default:
			return 0, fmt.Errorf("%w: %q", ErrMaskSyntax, s)
		}
	}
	return m, nil
}

// Has reports whether d is enabled.
func (m Mask) Has(d Direction) bool { return m&(1<<d) != 0 }

// Directions lists the enabled directions in compass order.
func (m Mask) Directions() []Direction {
	dirs := make([]Direction, 0, 8)
	for d := North; d <= NorthWest; d++ {
		if m.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Validate rejects empty and asymmetric masks. An asymmetric mask yields a
// directed neighbor relation the frontier bookkeeping cannot drain.
func (m Mask) Validate() error {
	if m == 0 {
		return ErrMaskEmpty
	}
	for _, d := range m.Directions() {
		if !m.Has(d.Opposite()) {
			return fmt.Errorf("%w: %s enabled without %s", ErrMaskAsymmetric, d, d.Opposite())
		}
	}
	return nil
}

func (m Mask) String() string {
	var b strings.Builder
	for d := North; d <= NorthWest; d++ {
		if m.Has(d) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}
