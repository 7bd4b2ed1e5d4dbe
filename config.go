package mapcast

import (
	"errors"
	"fmt"
	"time"

	"github.com/bodgit/mapcast/dither"
)

// NormalSquare is the default character used to draw a surface.
const NormalSquare = '█'

var (
	errNegativeDelay = errors.New("mapcast: negative delay")
	errNilSink       = errors.New("mapcast: nil sink")
)

// MapConfig configures a grid of map tiles.
type MapConfig struct {
	Algorithm dither.Algorithm
	// Delay is the minimum interval between two frames.
	Delay time.Duration
	// BlockWidth is the width in pixels of the frames that will be
	// processed.
	BlockWidth int
	// Start is the identifier of the top-left tile.
	Start Identifier
	// Grid is the size of the grid in tiles.
	Grid    Dimension
	Viewers Viewers
}

// Validate checks the configuration.
func (c MapConfig) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("%w: %d", dither.ErrUnknownAlgorithm, int(c.Algorithm))
	}
	if c.Delay < 0 {
		return errNegativeDelay
	}
	if c.BlockWidth < 1 {
		return fmt.Errorf("%w: block width %d", ErrInvalidDimension, c.BlockWidth)
	}
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	return c.Start.validate(c.Grid.Area())
}

// SurfaceConfig configures an anchored surface.
type SurfaceConfig struct {
	Algorithm dither.Algorithm
	// Delay is the minimum interval between two frames.
	Delay time.Duration
	// Dimension is the size of the surface, one character per pixel.
	Dimension Dimension
	ID        Identifier
	Location  Location
	// Character is used for every cell, NormalSquare if zero.
	Character rune
	Viewers   Viewers
}

// Validate checks the configuration.
func (c SurfaceConfig) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("%w: %d", dither.ErrUnknownAlgorithm, int(c.Algorithm))
	}
	if c.Delay < 0 {
		return errNegativeDelay
	}
	if err := c.Dimension.Validate(); err != nil {
		return err
	}
	return c.ID.validate(1)
}
