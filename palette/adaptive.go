package palette

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// Adaptive derives a palette of at most n colours from a reference image
// using median cut. It is meant for displays that are not limited to
// MapColors; pass the result to New.
func Adaptive(m image.Image, n int) (color.Palette, error) {
	if n < 1 || n > maxColors {
		return nil, fmt.Errorf("%w: %d colours", ErrInvalidPalette, n)
	}
	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), m), nil
}
