package mapcast

import (
	"fmt"
	"log"

	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/palette"
)

// SurfaceCallback dispatches frames to a surface of characters anchored at
// a location, such as a stack of named entities.
type SurfaceCallback struct {
	callback
	id        Identifier
	location  Location
	character rune
	sink      SurfaceSink

	// Scratch copy of the frame, Dither works in place
	scratch []uint32
}

// NewSurfaceCallback returns a SurfaceCallback sending frames to sink. A nil
// table uses palette.Default and a nil logger discards everything.
func NewSurfaceCallback(cfg SurfaceConfig, sink SurfaceSink, table *palette.Table, logger *log.Logger) (*SurfaceCallback, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errNilSink
	}
	character := cfg.Character
	if character == 0 {
		character = NormalSquare
	}
	s := &SurfaceCallback{
		id:        cfg.ID,
		location:  cfg.Location,
		character: character,
		sink:      sink,
		scratch:   make([]uint32, cfg.Dimension.Area()),
	}
	s.setup(cfg.Viewers, cfg.Dimension, cfg.Algorithm, cfg.Delay, table, logger)
	return s, nil
}

// ID returns the identifier of the surface.
func (s *SurfaceCallback) ID() Identifier {
	return s.id
}

// Location returns the location the surface is anchored to.
func (s *SurfaceCallback) Location() Location {
	return s.location
}

// Process implements Callback. The frame must be exactly the size of the
// surface.
func (s *SurfaceCallback) Process(pix []uint32) error {
	if err := dither.CheckGeometry(pix, s.dimension.Width); err != nil {
		return err
	}
	if len(pix) != s.dimension.Area() {
		return fmt.Errorf("%w: %d pixels for a %s surface", dither.ErrInvalidFrameGeometry, len(pix), s.dimension)
	}

	if !s.governor.Allow() {
		s.logger.Printf("Dropped frame for surface %d\n", s.id)
		return nil
	}

	copy(s.scratch, pix)
	if err := s.algorithm.Dither(s.table, s.scratch, s.dimension.Width); err != nil {
		return err
	}

	surface := Surface{
		ID:       s.id,
		Location: s.location,
		Width:    s.dimension.Width,
		Height:   s.dimension.Height,
		Rows:     make([][]Cell, s.dimension.Height),
	}
	for y := range surface.Rows {
		row := make([]Cell, s.dimension.Width)
		for x := range row {
			row[x] = Cell{
				Char:  s.character,
				Color: s.scratch[y*s.dimension.Width+x] & 0xffffff,
			}
		}
		surface.Rows[y] = row
	}

	viewers := s.Viewers()
	if err := s.sink.DisplaySurface(viewers, surface); err != nil {
		return fmt.Errorf("mapcast: display surface %d: %w", s.id, err)
	}

	s.logger.Printf("Dispatched surface %d to %d viewers\n", s.id, viewers.Len())

	return nil
}
