package dither

import (
	"sync"

	"github.com/bodgit/mapcast/palette"
)

// Frames taller than this are split into stripes of this many rows and each
// stripe is quantized on its own goroutine.
const stripeRows = 64

func stripes(height int, fn func(y0, y1 int)) {
	if height <= stripeRows {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	for y := 0; y < height; y += stripeRows {
		end := y + stripeRows
		if end > height {
			end = height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y, end)
	}
	wg.Wait()
}

func nearestDither(t *palette.Table, pix []uint32, width int) {
	stripes(len(pix)/width, func(y0, y1 int) {
		for i := y0 * width; i < y1*width; i++ {
			pix[i] = t.NearestColor(pix[i])
		}
	})
}

func nearestIndexed(t *palette.Table, pix []uint32, width int, out []byte) {
	stripes(len(pix)/width, func(y0, y1 int) {
		for i := y0 * width; i < y1*width; i++ {
			out[i] = t.NearestIndex(pix[i])
		}
	})
}
