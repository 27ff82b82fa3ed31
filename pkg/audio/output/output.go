// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for speaker and file sinks of decoded units
package output

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
)

// ErrNotOpen is returned when writing to an output that was not opened
var ErrNotOpen = errors.New("output: not open")

// Output consumes decoded units
type Output interface {
	// Open prepares the output for the given PCM format
	Open(sampleRate, channels int) error

	// Write outputs one unit (blocks until written)
	Write(unit audio.Unit) error

	// Close releases output resources
	Close() error
}

func checkChannels(channels int) error {
	if channels != 1 && channels != 2 {
		return fmt.Errorf("unsupported channel count: %d", channels)
	}
	return nil
}
