// ABOUTME: Forward-only byte cursor over an io.Reader
// ABOUTME: Supports fixed reads, skips and single-byte reads with offset tracking
package mpeg

import (
	"fmt"
	"io"
)

// Cursor is an exclusively owned read position into a byte source.
// It never rewinds.
type Cursor struct {
	r      io.Reader
	offset int64
	one    [1]byte
}

// NewCursor creates a cursor at the current position of r
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int64 {
	return c.offset
}

// Reader returns the underlying source, positioned at Offset
func (c *Cursor) Reader() io.Reader {
	return c.r
}

// ReadFull fills buf completely. A short read returns ErrInsufficientData
// together with the number of bytes read.
func (c *Cursor) ReadFull(buf []byte) (int, error) {
	n, err := io.ReadFull(c.r, buf)
	c.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, fmt.Errorf("%w: wanted %d bytes, got %d", ErrInsufficientData, len(buf), n)
	}
	if err != nil {
		return n, fmt.Errorf("read failed: %w", err)
	}
	return n, nil
}

// Skip discards n bytes. Reaching the end of the source is not an error;
// the source simply yields no further bytes.
func (c *Cursor) Skip(n int64) error {
	if n <= 0 {
		return nil
	}
	skipped, err := io.CopyN(io.Discard, c.r, n)
	c.offset += skipped
	if err != nil && err != io.EOF {
		return fmt.Errorf("skip failed: %w", err)
	}
	return nil
}

// ReadByte reads a single byte. It returns io.EOF at the end of the source.
func (c *Cursor) ReadByte() (byte, error) {
	for {
		n, err := c.r.Read(c.one[:])
		if n == 1 {
			c.offset++
			return c.one[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
