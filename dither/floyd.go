package dither

import "github.com/bodgit/mapcast/palette"

// Error weights, in sixteenths, for the pixel ahead on the same row and for
// the pixels behind, below and ahead on the next row.
const (
	weightAhead      = 7
	weightBelowBack  = 3
	weightBelow      = 5
	weightBelowAhead = 1
)

func clamp(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// spread adds the weighted error to the pending error of cell x. The division
// truncates towards zero.
func spread(row []int32, x int, dr, dg, db, weight int32) {
	o := x * 3
	row[o] += dr * weight / 16
	row[o+1] += dg * weight / 16
	row[o+2] += db * weight / 16
}

// diffuse runs serpentine Floyd-Steinberg over pix, writing the chosen colour
// to rgb and the chosen index to indices when they are not nil. rgb may be
// pix itself as each pixel is read before it is written and never read again.
func diffuse(t *palette.Table, pix []uint32, width int, rgb []uint32, indices []byte) {
	height := len(pix) / width

	// Pending error for the current and the next row, three channels per
	// pixel. The rows swap roles on every row.
	var rows [2][]int32
	rows[0] = make([]int32, width*3)
	rows[1] = make([]int32, width*3)

	for y := 0; y < height; y++ {
		cur, next := rows[y&1], rows[(y+1)&1]
		for i := range next {
			next[i] = 0
		}
		hasNextY := y < height-1

		x, dx := 0, 1
		if y&1 == 1 {
			x, dx = width-1, -1
		}

		for n := 0; n < width; n, x = n+1, x+dx {
			i := y*width + x
			c := pix[i]
			e := x * 3

			r := clamp(int32(c>>16&0xff) + cur[e])
			g := clamp(int32(c>>8&0xff) + cur[e+1])
			b := clamp(int32(c&0xff) + cur[e+2])

			index, closest := t.Nearest(int(r), int(g), int(b))

			dr := r - int32(closest>>16&0xff)
			dg := g - int32(closest>>8&0xff)
			db := b - int32(closest&0xff)

			ahead, behind := x+dx, x-dx
			hasAhead := ahead >= 0 && ahead < width
			hasBehind := behind >= 0 && behind < width

			if hasAhead {
				spread(cur, ahead, dr, dg, db, weightAhead)
			}
			if hasNextY {
				if hasBehind {
					spread(next, behind, dr, dg, db, weightBelowBack)
				}
				spread(next, x, dr, dg, db, weightBelow)
				if hasAhead {
					spread(next, ahead, dr, dg, db, weightBelowAhead)
				}
			}

			if rgb != nil {
				rgb[i] = closest
			}
			if indices != nil {
				indices[i] = index
			}
		}
	}
}

func floydDither(t *palette.Table, pix []uint32, width int) {
	diffuse(t, pix, width, pix, nil)
}

func floydIndexed(t *palette.Table, pix []uint32, width int, out []byte) {
	diffuse(t, pix, width, nil, out)
}
