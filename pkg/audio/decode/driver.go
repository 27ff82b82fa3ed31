// ABOUTME: Decode loop driver
// ABOUTME: Feeds a stream to a decode engine chunk by chunk and yields one unit per call
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
)

// DefaultChunkSize is the number of stream bytes read per engine call
const DefaultChunkSize = 1024

// Driver drives an engine over a stream. It keeps no state between calls
// beyond what lives inside the engine.
type Driver struct {
	r      io.Reader
	engine Engine
	buf    []byte
}

// NewDriver creates a driver reading chunks of up to chunkSize bytes from r
func NewDriver(r io.Reader, engine Engine, chunkSize int) *Driver {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Driver{
		r:      r,
		engine: engine,
		buf:    make([]byte, chunkSize),
	}
}

// DecodeOneUnit returns the next decoded unit. It first drains output the
// engine already buffered, then reads chunks until the engine produces
// output. At the end of the stream it flushes the engine once; if that
// yields nothing it returns io.EOF, and keeps doing so on later calls.
func (d *Driver) DecodeOneUnit() (audio.Unit, error) {
	unit, err := d.engine.Decode(Drain)
	if err != nil {
		return audio.Unit{}, fmt.Errorf("%w: %w", ErrEngineDecode, err)
	}
	if !unit.Empty() {
		return unit, nil
	}

	for {
		n, rerr := d.r.Read(d.buf)
		if n > 0 {
			unit, err := d.engine.Decode(Chunk(d.buf[:n]))
			if err != nil {
				return audio.Unit{}, fmt.Errorf("%w: %w", ErrEngineDecode, err)
			}
			if !unit.Empty() {
				return unit, nil
			}
		}

		if errors.Is(rerr, io.EOF) {
			unit, err := d.engine.Decode(EndOfStream)
			if err != nil {
				return audio.Unit{}, fmt.Errorf("%w: %w", ErrEngineDecode, err)
			}
			if !unit.Empty() {
				return unit, nil
			}
			return audio.Unit{}, io.EOF
		}
		if rerr != nil {
			return audio.Unit{}, fmt.Errorf("read failed: %w", rerr)
		}
	}
}
