package tile

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Image returns the tile as a paletted image using palette p.
func Image(t Tile, p color.Palette) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, Size, Size), p)
	copy(m.Pix, t.Data)
	return m
}

// Mosaic lays the tiles of a grid.X by grid.Y grid out as a single paletted
// image, each tile placed according to its row and column.
func Mosaic(tiles []Tile, grid image.Point, p color.Palette) (*image.Paletted, error) {
	if grid.X < 1 || grid.Y < 1 {
		return nil, errBadGrid
	}

	m := image.NewPaletted(image.Rect(0, 0, grid.X*Size, grid.Y*Size), p)
	for _, t := range tiles {
		if t.Column < 0 || t.Column >= grid.X || t.Row < 0 || t.Row >= grid.Y {
			return nil, errors.New("tile: tile outside of grid")
		}
		if len(t.Data) != Pixels {
			return nil, errors.New("tile: tile is wrong size")
		}
		for y := 0; y < Size; y++ {
			dx := t.Column * Size
			dy := t.Row*Size + y
			copy(m.Pix[m.PixOffset(dx, dy):m.PixOffset(dx, dy)+Size], t.Data[y*Size:(y+1)*Size])
		}
	}

	return m, nil
}

// Encode writes the tiles of a grid to w as a single PNG image.
func Encode(w io.Writer, tiles []Tile, grid image.Point, p color.Palette) error {
	m, err := Mosaic(tiles, grid, p)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}
