/*
Package dither converts frames of 24-bit colour pixels into palette indices.

Frames are flat slices of packed 0xAARRGGBB pixels in row-major order with a
given width; the height is implied by the length. Two algorithms are
available: NearestColor maps every pixel to its closest palette colour on its
own, FloydSteinberg diffuses the quantization error of each pixel onto the
neighbours that have not been visited yet, scanning alternate rows in
opposite directions.

Every algorithm offers two entry points. Dither replaces the pixels of the
frame with the palette colours they were quantized to, DitherIndexed leaves
the frame alone and returns the palette indices in a new carrier.

FloydSteinberg adds every share of the error to what is already pending for a
neighbour rather than replacing it, so its output differs from
implementations that overwrite the pending error.
*/
package dither

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/mapcast/carrier"
	"github.com/bodgit/mapcast/palette"
)

var (
	// ErrInvalidFrameGeometry is returned for an empty frame, a width less
	// than one or a frame length that is not a multiple of the width.
	ErrInvalidFrameGeometry = errors.New("dither: invalid frame geometry")

	// ErrUnknownAlgorithm is returned for an Algorithm value or name that
	// does not exist.
	ErrUnknownAlgorithm = errors.New("dither: unknown algorithm")
)

// Algorithm selects how a frame is quantized.
type Algorithm int

const (
	// NearestColor replaces every pixel with the closest palette colour.
	NearestColor Algorithm = iota
	// FloydSteinberg uses serpentine Floyd-Steinberg error diffusion.
	FloydSteinberg
)

type implementation struct {
	names   []string
	dither  func(*palette.Table, []uint32, int)
	indexed func(*palette.Table, []uint32, int, []byte)
}

var algorithms = [...]implementation{
	NearestColor: {
		names:   []string{"nearest", "simple"},
		dither:  nearestDither,
		indexed: nearestIndexed,
	},
	FloydSteinberg: {
		names:   []string{"floyd-steinberg", "floyd"},
		dither:  floydDither,
		indexed: floydIndexed,
	},
}

// ParseAlgorithm returns the Algorithm with the given name.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, impl := range algorithms {
		for _, name := range impl.names {
			if s == name {
				return Algorithm(a), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Algorithms returns the canonical names of every algorithm.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for _, impl := range algorithms {
		names = append(names, impl.names[0])
	}
	return names
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithms[a].names[0]
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a >= 0 && int(a) < len(algorithms)
}

// CheckGeometry returns an error wrapping ErrInvalidFrameGeometry unless pix
// is a non-empty frame whose length is a multiple of width.
func CheckGeometry(pix []uint32, width int) error {
	switch {
	case width < 1:
		return fmt.Errorf("%w: width %d", ErrInvalidFrameGeometry, width)
	case len(pix) == 0:
		return fmt.Errorf("%w: empty frame", ErrInvalidFrameGeometry)
	case len(pix)%width != 0:
		return fmt.Errorf("%w: %d pixels is not a multiple of width %d", ErrInvalidFrameGeometry, len(pix), width)
	}
	return nil
}

func (a Algorithm) check(pix []uint32, width int) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return CheckGeometry(pix, width)
}

// Dither quantizes the frame in place, every pixel is replaced with the
// opaque palette colour chosen for it. A nil table uses palette.Default.
func (a Algorithm) Dither(t *palette.Table, pix []uint32, width int) error {
	if err := a.check(pix, width); err != nil {
		return err
	}
	if t == nil {
		t = palette.Default()
	}
	algorithms[a].dither(t, pix, width)
	return nil
}

// DitherIndexed quantizes the frame and returns the palette index of every
// pixel, the frame itself is not modified. A nil table uses palette.Default.
func (a Algorithm) DitherIndexed(t *palette.Table, pix []uint32, width int) (*carrier.Carrier, error) {
	if err := a.check(pix, width); err != nil {
		return nil, err
	}
	if t == nil {
		t = palette.Default()
	}
	c := carrier.New(len(pix))
	algorithms[a].indexed(t, pix, width, c.Bytes())
	return c, nil
}
