// ABOUTME: WAV file output
// ABOUTME: Encodes decoded units to a 16-bit PCM WAV file with go-audio/wav
package output

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAV writes units to a WAV file created on Open
type WAV struct {
	path     string
	file     *os.File
	enc      *wav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	samples  int64
}

// NewWAV creates a WAV output writing to path
func NewWAV(path string) *WAV {
	return &WAV{path: path}
}

// Open creates the file and writes the WAV header
func (w *WAV) Open(sampleRate, channels int) error {
	if w.enc != nil {
		return fmt.Errorf("wav output %s already open", w.path)
	}
	if err := checkChannels(channels); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	w.file = f
	w.channels = channels
	w.enc = wav.NewEncoder(f, sampleRate, 16, channels, wavFormatPCM)
	w.buf = &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	plog.Debugf("Writing WAV %s: %dHz, %d channels", w.path, sampleRate, channels)
	return nil
}

// Write appends one unit
func (w *WAV) Write(unit audio.Unit) error {
	if w.enc == nil {
		return ErrNotOpen
	}

	data := w.buf.Data[:0]
	for _, s := range unit.Interleaved(w.channels) {
		data = append(data, int(audio.SampleToInt16(s)))
	}
	w.buf.Data = data

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	w.samples += int64(unit.Samples)
	return nil
}

// Samples returns the number of samples per channel written
func (w *WAV) Samples() int64 {
	return w.samples
}

// Close finalizes the WAV header and closes the file
func (w *WAV) Close() error {
	if w.enc == nil {
		return nil
	}

	encErr := w.enc.Close()
	fileErr := w.file.Close()
	w.enc = nil
	w.file = nil

	if encErr != nil {
		return fmt.Errorf("failed to finalize wav file: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close wav file: %w", fileErr)
	}
	plog.Infof("Wrote %s (%d samples)", w.path, w.samples)
	return nil
}
