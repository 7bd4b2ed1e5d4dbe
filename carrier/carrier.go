/*
Package carrier implements the byte buffer that dithered frames are written
into.

A Carrier keeps the dithering code independent of whatever buffer a display
transport uses downstream; transports either take the raw bytes or have the
carrier write itself out. A Carrier must not be written to from more than one
goroutine at a time.
*/
package carrier

import (
	"fmt"
	"io"
)

// Carrier is a growable sequence of palette indices.
type Carrier struct {
	b []byte
}

// New returns a Carrier holding n zero bytes.
func New(n int) *Carrier {
	return &Carrier{
		b: make([]byte, n),
	}
}

// Wrap returns a Carrier backed by b. The slice is not copied.
func Wrap(b []byte) *Carrier {
	return &Carrier{
		b: b,
	}
}

// Len returns the number of bytes in the carrier.
func (c *Carrier) Len() int {
	return len(c.b)
}

// At returns the byte at position i.
func (c *Carrier) At(i int) byte {
	return c.b[i]
}

// Set stores v at position i.
func (c *Carrier) Set(i int, v byte) {
	c.b[i] = v
}

// WriteByte appends v to the end of the carrier.
func (c *Carrier) WriteByte(v byte) error {
	c.b = append(c.b, v)
	return nil
}

// Write appends p to the end of the carrier.
func (c *Carrier) Write(p []byte) (int, error) {
	c.b = append(c.b, p...)
	return len(p), nil
}

// Bytes returns the contents of the carrier as a contiguous slice. The slice
// aliases the carrier so it is only valid until the next append.
func (c *Carrier) Bytes() []byte {
	return c.b
}

// Slice returns a copy of the n bytes starting at off.
func (c *Carrier) Slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(c.b) {
		return nil, fmt.Errorf("carrier: slice [%d:%d] out of range for length %d", off, off+n, len(c.b))
	}
	return append([]byte(nil), c.b[off:off+n]...), nil
}

// WriteTo writes the contents of the carrier to w.
func (c *Carrier) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.b)
	return int64(n), err
}
