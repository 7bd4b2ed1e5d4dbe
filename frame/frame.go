/*
Package frame holds decoded video frames as flat slices of packed 0xAARRGGBB
pixels and adapts decoded images into that form.

Images are decoded with the standard library decoders plus BMP and WebP from
golang.org/x/image, and are resized with gift when a display needs a
different resolution.
*/
package frame

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

var errBadGeometry = errors.New("frame: invalid frame geometry")

// Frame is a rectangular block of pixels in row-major order.
type Frame struct {
	Pix   []uint32
	Width int
}

// Height returns the number of rows in the frame.
func (f Frame) Height() int {
	if f.Width < 1 {
		return 0
	}
	return len(f.Pix) / f.Width
}

// Validate checks the frame is non-empty and its length is a multiple of its
// width.
func (f Frame) Validate() error {
	if f.Width < 1 || len(f.Pix) == 0 || len(f.Pix)%f.Width != 0 {
		return fmt.Errorf("%w: %d pixels at width %d", errBadGeometry, len(f.Pix), f.Width)
	}
	return nil
}

// Image returns the frame as an NRGBA image.
func (f Frame) Image() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height()))
	for i, c := range f.Pix {
		m.Pix[i*4+0] = uint8(c >> 16)
		m.Pix[i*4+1] = uint8(c >> 8)
		m.Pix[i*4+2] = uint8(c)
		m.Pix[i*4+3] = uint8(c >> 24)
	}
	return m
}

// FromImage converts m into a frame. If width and height are both positive
// and differ from the size of m, the image is resized first.
func FromImage(m image.Image, width, height int) Frame {
	b := m.Bounds()
	if width > 0 && height > 0 && (b.Dx() != width || b.Dy() != height) {
		g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, m)
		m, b = dst, dst.Bounds()
	}

	nrgba, ok := m.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				nrgba.Set(x, y, m.At(x, y))
			}
		}
	}

	f := Frame{
		Pix:   make([]uint32, b.Dx()*b.Dy()),
		Width: b.Dx(),
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			o := nrgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			f.Pix[y*f.Width+x] = uint32(nrgba.Pix[o+3])<<24 |
				uint32(nrgba.Pix[o])<<16 |
				uint32(nrgba.Pix[o+1])<<8 |
				uint32(nrgba.Pix[o+2])
		}
	}

	return f
}

// Decode reads an image from r and converts it into a frame, resizing it as
// FromImage does.
func Decode(r io.Reader, width, height int) (Frame, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return Frame{}, err
	}
	return FromImage(m, width, height), nil
}

// Load decodes the image file at path into a frame.
func Load(path string, width, height int) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, err
	}
	defer f.Close()

	return Decode(f, width, height)
}
