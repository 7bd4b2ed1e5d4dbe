/*
Package palette implements the fixed colour palette of a paletted map display
and the lookup tables used to quantize 24-bit colours onto it.

Colours are handled as packed 0xAARRGGBB values. The alpha channel is ignored
by every lookup; a palette entry with zero alpha is transparent and is never
returned as the nearest match for a colour.

A Table is immutable once built and may be shared between any number of
goroutines without synchronization.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"runtime"
	"sync"
)

const (
	keyBits   = 7
	keyShift  = 8 - keyBits
	keyLevels = 1 << keyBits
	keySize   = 1 << (keyBits * 3)
	maxColors = 256
)

// ErrInvalidPalette is returned when a Table cannot be built from a palette.
var ErrInvalidPalette = errors.New("palette: invalid palette")

type candidate struct {
	r, g, b int32
	index   uint8
}

// Table holds a palette along with two lookup tables indexed by a reduced
// precision colour key: the index of the nearest palette entry and the full
// colour of that entry.
type Table struct {
	palette    color.Palette
	colors     []uint32
	candidates []candidate

	index []uint8
	full  []uint32

	// Keys shared by more than one distinct palette colour are marked, and
	// the colours sharing them are matched exactly before falling back to
	// the cell.
	marked []uint64
	shared map[int][]uint8
}

func pack(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	return a>>8<<24 | r>>8<<16 | g>>8<<8 | b>>8
}

func key(r, g, b int) int {
	return r>>keyShift<<(keyBits*2) | g>>keyShift<<keyBits | b>>keyShift
}

// New builds the lookup tables for p. Building walks every key for every
// opaque colour so it should happen once, at start up.
func New(p color.Palette) (*Table, error) {
	if len(p) == 0 || len(p) > maxColors {
		return nil, fmt.Errorf("%w: %d colours", ErrInvalidPalette, len(p))
	}

	t := &Table{
		palette: append(color.Palette(nil), p...),
		colors:  make([]uint32, len(p)),
		index:   make([]uint8, keySize),
		full:    make([]uint32, keySize),
		marked:  make([]uint64, keySize/64),
		shared:  make(map[int][]uint8),
	}

	for i, c := range p {
		t.colors[i] = pack(c)
		if t.colors[i]>>24 == 0 {
			continue
		}
		t.candidates = append(t.candidates, candidate{
			r:     int32(t.colors[i] >> 16 & 0xff),
			g:     int32(t.colors[i] >> 8 & 0xff),
			b:     int32(t.colors[i] & 0xff),
			index: uint8(i),
		})
	}

	if len(t.candidates) == 0 {
		return nil, fmt.Errorf("%w: no opaque colours", ErrInvalidPalette)
	}

	t.fill()

	// Every palette colour maps to itself. Walk backwards so the first entry
	// wins when two colours share a key.
	for i := len(t.candidates) - 1; i >= 0; i-- {
		c := t.candidates[i]
		k := key(int(c.r), int(c.g), int(c.b))
		t.index[k] = c.index
		t.full[k] = t.colors[c.index]
	}

	for _, c := range t.candidates {
		k := key(int(c.r), int(c.g), int(c.b))
		t.shared[k] = append(t.shared[k], c.index)
	}
	for k, indices := range t.shared {
		if !t.distinct(indices) {
			delete(t.shared, k)
			continue
		}
		t.marked[k>>6] |= 1 << uint(k&63)
	}

	return t, nil
}

// distinct reports whether the palette entries hold more than one RGB value
func (t *Table) distinct(indices []uint8) bool {
	for _, i := range indices[1:] {
		if t.colors[i]&0xffffff != t.colors[indices[0]]&0xffffff {
			return true
		}
	}
	return false
}

func (t *Table) fill() {
	planes := make(chan int)

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for r := range planes {
				t.fillPlane(r)
			}
		}()
	}

	for r := 0; r < keyLevels; r++ {
		planes <- r
	}
	close(planes)

	wg.Wait()
}

// fillPlane resolves every key sharing the red component r
func (t *Table) fillPlane(r int) {
	for g := 0; g < keyLevels; g++ {
		for b := 0; b < keyLevels; b++ {
			i := t.nearest(int32(r<<keyShift), int32(g<<keyShift), int32(b<<keyShift))
			k := r<<(keyBits*2) | g<<keyBits | b
			t.index[k] = i
			t.full[k] = t.colors[i]
		}
	}
}

// nearest returns the palette index closest to the colour in RGB space, the
// first candidate wins a tie
func (t *Table) nearest(r, g, b int32) uint8 {
	best, bestSum := uint8(0), int32(1<<31-1)
	for _, c := range t.candidates {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		if sum := dr*dr + dg*dg + db*db; sum < bestSum {
			best, bestSum = c.index, sum
		}
	}
	return best
}

func (t *Table) lookup(r, g, b int) (uint8, uint32) {
	k := key(r, g, b)
	if t.marked[k>>6]&(1<<uint(k&63)) != 0 {
		rgb := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		for _, i := range t.shared[k] {
			if t.colors[i]&0xffffff == rgb {
				return i, t.colors[i]
			}
		}
	}
	return t.index[k], t.full[k]
}

// NearestIndex returns the index of the palette colour closest to rgb. A
// colour that is in the palette always returns its own index.
func (t *Table) NearestIndex(rgb uint32) uint8 {
	i, _ := t.lookup(int(rgb>>16&0xff), int(rgb>>8&0xff), int(rgb&0xff))
	return i
}

// NearestColor returns the palette colour closest to rgb.
func (t *Table) NearestColor(rgb uint32) uint32 {
	_, c := t.lookup(int(rgb>>16&0xff), int(rgb>>8&0xff), int(rgb&0xff))
	return c
}

// Nearest returns both the index and the colour of the palette entry closest
// to the given channels, each of which must be in the range [0, 255].
func (t *Table) Nearest(r, g, b int) (uint8, uint32) {
	return t.lookup(r, g, b)
}

// ColorAt returns the colour stored at index i, or zero if i is outside of
// the palette.
func (t *Table) ColorAt(i uint8) uint32 {
	if int(i) >= len(t.colors) {
		return 0
	}
	return t.colors[i]
}

// Len returns the number of colours in the palette.
func (t *Table) Len() int {
	return len(t.colors)
}

// Palette returns a copy of the palette the table was built from.
func (t *Table) Palette() color.Palette {
	return append(color.Palette(nil), t.palette...)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table for MapColors. It is built on first use and
// shared afterwards.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := New(MapColors)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
