package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

func toColorful(c uint32) colorful.Color {
	return colorful.Color{
		R: float64(c>>16&0xff) / 255,
		G: float64(c>>8&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
}

// Hex formats the RGB part of c as a "#rrggbb" string.
func Hex(c uint32) string {
	return toColorful(c).Hex()
}

// Distance returns the perceptual distance between two colours, measured as
// the CIE76 difference in L*a*b* space.
func (t *Table) Distance(a, b uint32) float64 {
	return toColorful(a).DistanceCIE76(toColorful(b))
}

// MeanError returns the mean perceptual distance between the pixels of a
// frame and the palette colours they were dithered to.
func (t *Table) MeanError(src []uint32, indices []byte) (float64, error) {
	if len(src) != len(indices) {
		return 0, fmt.Errorf("palette: %d pixels but %d indices", len(src), len(indices))
	}
	if len(src) == 0 {
		return 0, nil
	}

	var sum float64
	for i, c := range src {
		sum += t.Distance(c, t.ColorAt(indices[i]))
	}
	return sum / float64(len(src)), nil
}
