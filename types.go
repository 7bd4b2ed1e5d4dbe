package mapcast

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
)

var (
	// ErrInvalidIdentifier is returned when an identifier, or the range of
	// identifiers a grid needs, is negative or larger than MaxIdentifier.
	ErrInvalidIdentifier = errors.New("mapcast: invalid identifier")

	// ErrInvalidDimension is returned for a width or height less than one.
	ErrInvalidDimension = errors.New("mapcast: invalid dimension")
)

// MaxIdentifier is the largest identifier a display can address.
const MaxIdentifier = math.MaxInt32

// Identifier addresses one tile or surface of a display.
type Identifier int

func (id Identifier) validate(count int) error {
	if id < 0 || int64(id)+int64(count)-1 > MaxIdentifier {
		return fmt.Errorf("%w: %d", ErrInvalidIdentifier, id)
	}
	return nil
}

// Dimension is a width and height, in pixels or in tiles depending on
// context.
type Dimension struct {
	Width  int
	Height int
}

// Validate checks both the width and height are at least one.
func (d Dimension) Validate() error {
	if d.Width < 1 || d.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, d.Width, d.Height)
	}
	return nil
}

// Area returns Width * Height.
func (d Dimension) Area() int {
	return d.Width * d.Height
}

func (d Dimension) point() image.Point {
	return image.Pt(d.Width, d.Height)
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Viewers is an immutable set of recipients.
type Viewers struct {
	ids map[string]struct{}
}

// NewViewers returns the set of the given recipients, duplicates are
// collapsed.
func NewViewers(ids ...string) Viewers {
	v := Viewers{
		ids: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		v.ids[id] = struct{}{}
	}
	return v
}

// Len returns the number of recipients.
func (v Viewers) Len() int {
	return len(v.ids)
}

// Contains reports whether id is one of the recipients.
func (v Viewers) Contains(id string) bool {
	_, ok := v.ids[id]
	return ok
}

// IDs returns the recipients in sorted order.
func (v Viewers) IDs() []string {
	ids := make([]string, 0, len(v.ids))
	for id := range v.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Location is a point in the world a surface is anchored to.
type Location struct {
	X, Y, Z float64
}
