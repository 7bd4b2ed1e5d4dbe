package mapcast

import (
	"fmt"
	"log"

	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/palette"
	"github.com/bodgit/mapcast/tile"
)

// MapCallback dispatches frames to a grid of map tiles.
type MapCallback struct {
	callback
	start      Identifier
	blockWidth int
	sink       MapSink
}

// NewMapCallback returns a MapCallback sending frames to sink. A nil table
// uses palette.Default and a nil logger discards everything.
func NewMapCallback(cfg MapConfig, sink MapSink, table *palette.Table, logger *log.Logger) (*MapCallback, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errNilSink
	}
	m := &MapCallback{
		start:      cfg.Start,
		blockWidth: cfg.BlockWidth,
		sink:       sink,
	}
	m.setup(cfg.Viewers, cfg.Grid, cfg.Algorithm, cfg.Delay, table, logger)
	return m, nil
}

// Start returns the identifier of the top-left tile.
func (m *MapCallback) Start() Identifier {
	return m.start
}

// BlockWidth returns the expected width of frames in pixels.
func (m *MapCallback) BlockWidth() int {
	return m.blockWidth
}

// Process implements Callback.
func (m *MapCallback) Process(pix []uint32) error {
	if err := dither.CheckGeometry(pix, m.blockWidth); err != nil {
		return err
	}

	if !m.governor.Allow() {
		m.logger.Printf("Dropped frame for maps %d-%d\n", m.start, int(m.start)+m.dimension.Area()-1)
		return nil
	}

	data, err := m.algorithm.DitherIndexed(m.table, pix, m.blockWidth)
	if err != nil {
		return err
	}

	tiles, err := tile.Split(data.Bytes(), m.blockWidth, m.dimension.point(), int(m.start))
	if err != nil {
		return err
	}

	viewers := m.Viewers()
	if err := m.sink.DisplayMaps(viewers, MapFrame{
		Start:      m.start,
		Grid:       m.dimension,
		BlockWidth: m.blockWidth,
		Height:     len(pix) / m.blockWidth,
		Data:       data,
		Tiles:      tiles,
	}); err != nil {
		return fmt.Errorf("mapcast: display maps %d-%d: %w", m.start, int(m.start)+len(tiles)-1, err)
	}

	m.logger.Printf("Dispatched %d tiles to %d viewers\n", len(tiles), viewers.Len())

	return nil
}
