/*
Package tile splits dithered frames across a grid of map tiles.

Every tile is 128 by 128 pixels and is addressed by its own identifier. Tiles
are numbered in row-major order from the top-left corner of the grid, so the
tile in row r and column c of a grid w tiles wide gets the identifier
start + r*w + c.

A frame is centered on the grid. Parts of a frame that fall outside the grid
are cropped and parts of the grid the frame does not cover are left as
palette index 0, which map displays treat as transparent.
*/
package tile

const (
	// Size is the width and height of a tile in pixels.
	Size = 128
	// Pixels is the number of pixels in a tile.
	Pixels = Size * Size
)

// Tile is one addressable tile's worth of palette indices.
type Tile struct {
	ID     int
	Column int
	Row    int
	// Data holds Pixels palette indices in row-major order.
	Data []byte
}
