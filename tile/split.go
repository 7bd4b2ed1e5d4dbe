package tile

import (
	"errors"
	"fmt"
	"image"
)

var (
	errBadGeometry = errors.New("tile: invalid frame geometry")
	errBadGrid     = errors.New("tile: invalid grid")
)

// Split cuts a frame of palette indices, frameWidth pixels wide, into the
// tiles of a grid.X by grid.Y grid whose first tile is identified by start.
func Split(data []byte, frameWidth int, grid image.Point, start int) ([]Tile, error) {
	if frameWidth < 1 || len(data) == 0 || len(data)%frameWidth != 0 {
		return nil, fmt.Errorf("%w: %d bytes at width %d", errBadGeometry, len(data), frameWidth)
	}
	if grid.X < 1 || grid.Y < 1 {
		return nil, fmt.Errorf("%w: %dx%d", errBadGrid, grid.X, grid.Y)
	}

	frameHeight := len(data) / frameWidth

	// Offset of the frame within the grid, negative when the frame is
	// bigger than the grid
	xOff := (grid.X*Size - frameWidth) / 2
	yOff := (grid.Y*Size - frameHeight) / 2

	tiles := make([]Tile, 0, grid.X*grid.Y)
	for ty := 0; ty < grid.Y; ty++ {
		for tx := 0; tx < grid.X; tx++ {
			t := Tile{
				ID:     start + ty*grid.X + tx,
				Column: tx,
				Row:    ty,
				Data:   make([]byte, Pixels),
			}

			// Frame column of the left edge of this tile, and the span of
			// the tile the frame covers
			sx := tx*Size - xOff
			lo, hi := max(0, -sx), min(Size, frameWidth-sx)

			for y := 0; y < Size && lo < hi; y++ {
				sy := ty*Size + y - yOff
				if sy < 0 || sy >= frameHeight {
					continue
				}
				copy(t.Data[y*Size+lo:y*Size+hi], data[sy*frameWidth+sx+lo:sy*frameWidth+sx+hi])
			}

			tiles = append(tiles, t)
		}
	}

	return tiles, nil
}
