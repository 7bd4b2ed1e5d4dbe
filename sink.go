package mapcast

import (
	"github.com/bodgit/mapcast/carrier"
	"github.com/bodgit/mapcast/tile"
)

// MapFrame is one dithered frame addressed to a grid of map tiles.
type MapFrame struct {
	// Start is the identifier of the top-left tile.
	Start Identifier
	// Grid is the size of the grid in tiles.
	Grid Dimension
	// BlockWidth and Height are the size of the dithered frame in pixels.
	BlockWidth int
	Height     int
	// Data holds the palette index of every pixel of the frame.
	Data *carrier.Carrier
	// Tiles holds the frame split across the grid, in row-major order.
	Tiles []tile.Tile
}

// MapSink renders frames on a grid of map tiles. DisplayMaps is called
// synchronously from Process; implementations that need to run on a
// particular goroutine must hand the frame over themselves.
type MapSink interface {
	DisplayMaps(viewers Viewers, frame MapFrame) error
}

// MapSinkFunc adapts a function into a MapSink.
type MapSinkFunc func(Viewers, MapFrame) error

// DisplayMaps calls f(viewers, frame).
func (f MapSinkFunc) DisplayMaps(viewers Viewers, frame MapFrame) error {
	return f(viewers, frame)
}

// Cell is one character of a surface.
type Cell struct {
	Char  rune
	Color uint32
}

// Surface is one dithered frame projected onto a grid of characters
// anchored at a location.
type Surface struct {
	ID       Identifier
	Location Location
	Width    int
	Height   int
	// Rows holds Height rows of Width cells, top row first.
	Rows [][]Cell
}

// SurfaceSink renders frames on an anchored surface.
type SurfaceSink interface {
	DisplaySurface(viewers Viewers, surface Surface) error
}

// SurfaceSinkFunc adapts a function into a SurfaceSink.
type SurfaceSinkFunc func(Viewers, Surface) error

// DisplaySurface calls f(viewers, surface).
func (f SurfaceSinkFunc) DisplaySurface(viewers Viewers, surface Surface) error {
	return f(viewers, surface)
}
