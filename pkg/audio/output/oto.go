// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays decoded units through the speaker with software volume control
package output

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto plays units through the default audio device. oto allows one context
// per process, so an Oto cannot change format once opened.
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{volume: 100}
}

// Open initializes the audio device
func (o *Oto) Open(sampleRate, channels int) error {
	if err := checkChannels(channels); err != nil {
		return err
	}
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			plog.Warningf("Format change (%dHz %dch -> %dHz %dch) ignored, oto cannot be reinitialized",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// A persistent player drains the pipe
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	plog.Infof("Audio output initialized: %dHz, %d channels", sampleRate, channels)
	return nil
}

// Write plays one unit (blocks until the player accepted it)
func (o *Oto) Write(unit audio.Unit) error {
	if !o.ready {
		return ErrNotOpen
	}

	samples := applyVolume(unit.Interleaved(o.channels), o.volume, o.muted)

	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(audio.SampleToInt16(s)))
	}

	if _, err := o.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.volume = clampVolume(volume)
	plog.Debugf("Volume set to %d", o.volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
	plog.Debugf("Muted: %v", muted)
}

// Volume returns the current volume
func (o *Oto) Volume() int {
	return o.volume
}

// Muted returns the mute state
func (o *Oto) Muted() bool {
	return o.muted
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// applyVolume applies volume and mute to samples with clipping protection
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := volumeMultiplier(volume, muted)

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)
		if scaled > audio.Max24Bit {
			scaled = audio.Max24Bit
		} else if scaled < audio.Min24Bit {
			scaled = audio.Min24Bit
		}
		result[i] = int32(scaled)
	}
	return result
}

func volumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
