// ABOUTME: MP3 decode engine backed by go-mp3
// ABOUTME: Buffers fed chunks and hands go-mp3 exactly one whole frame at a time
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	"github.com/Resonate-Protocol/mpegsync/pkg/mpeg"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// go-mp3 always decodes to interleaved 16-bit stereo
	mp3OutputChannels = 2
	mp3BytesPerFrame  = mp3OutputChannels * 2

	// largest PCM output of one frame: 1152 samples
	maxFramePCMBytes = 1152 * mp3BytesPerFrame
)

// frameFeed is the reader go-mp3 pulls from. It only ever holds one whole frame.
type frameFeed struct {
	buf []byte
}

func (f *frameFeed) Read(p []byte) (int, error) {
	if len(f.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.buf)
	f.buf = f.buf[n:]
	return n, nil
}

// MP3Engine implements Engine with go-mp3. Chunks are buffered until a whole
// frame is available; go-mp3 keeps the bit reservoir across frames.
type MP3Engine struct {
	open    bool
	pending []byte
	feed    frameFeed
	decoder *mp3.Decoder
	primed  bool // decoder holds PCM from the frame read during configuration
	info    StreamInfo
	frames  int
	pcm     []byte
}

// NewMP3 creates an MP3 decode engine
func NewMP3() *MP3Engine {
	return &MP3Engine{
		pcm: make([]byte, maxFramePCMBytes),
	}
}

// Open starts a session
func (e *MP3Engine) Open() error {
	if e.open {
		return ErrSessionActive
	}
	e.open = true
	e.pending = e.pending[:0]
	e.feed.buf = nil
	e.decoder = nil
	e.primed = false
	e.info = StreamInfo{}
	e.frames = 0
	return nil
}

// Configure buffers chunk and creates the go-mp3 decoder once the first
// whole audio frame is available. A leading Xing/Info frame is read for
// stream info and not decoded.
func (e *MP3Engine) Configure(chunk []byte) (ConfigStatus, error) {
	if !e.open {
		return NeedMore, ErrNoSession
	}
	if e.decoder != nil {
		return Configured, nil
	}
	e.pending = append(e.pending, chunk...)

	for {
		frame, hdr, err := e.nextFrame()
		if err != nil {
			return NeedMore, err
		}
		if frame == nil {
			return NeedMore, nil
		}

		if e.info.SampleRate == 0 {
			e.info = newStreamInfo(hdr)
			if xing, ok := mpeg.ParseXing(frame); ok {
				e.info.TotalFrames = xing.Frames
				e.info.EncoderDelay = xing.Delay
				e.info.EncoderPadding = xing.Padding
				e.info.Encoder = xing.Encoder
				plog.Debugf("Found Xing/Info frame (frames: %d, encoder: %q)", xing.Frames, xing.Encoder)
				continue
			}
		}

		e.feed.buf = frame
		dec, err := mp3.NewDecoder(&e.feed)
		if err != nil {
			return NeedMore, fmt.Errorf("failed to create mp3 decoder: %w", err)
		}
		e.decoder = dec
		e.primed = true
		e.frames++

		plog.Infof("Configured MP3 decoder: %s %s, %d Hz, %d kbps, %d channels",
			e.info.Version, e.info.Layer, e.info.SampleRate, e.info.Bitrate, e.info.Channels)
		return Configured, nil
	}
}

// Decode performs one engine interaction. Chunk bytes are buffered; then
// PCM held from configuration is returned first, otherwise the next whole
// buffered frame is decoded. EndOfStream drops a trailing partial frame.
func (e *MP3Engine) Decode(in Input) (audio.Unit, error) {
	if !e.open {
		return audio.Unit{}, ErrNoSession
	}
	if e.decoder == nil {
		return audio.Unit{}, ErrNotConfigured
	}

	if in.Kind == KindChunk {
		e.pending = append(e.pending, in.Data...)
	}

	if e.primed {
		e.primed = false
		return e.readUnit()
	}

	frame, _, err := e.nextFrame()
	if err != nil {
		return audio.Unit{}, err
	}
	if frame == nil {
		if in.Kind == KindEndOfStream && len(e.pending) > 0 {
			plog.Debugf("Dropping %d trailing bytes at end of stream", len(e.pending))
			e.pending = e.pending[:0]
		}
		return audio.Unit{}, nil
	}

	e.feed.buf = frame
	e.frames++
	return e.readUnit()
}

// Info returns the stream parameters
func (e *MP3Engine) Info() StreamInfo {
	return e.info
}

// Frames returns the number of frames handed to go-mp3
func (e *MP3Engine) Frames() int {
	return e.frames
}

// Close ends the session
func (e *MP3Engine) Close() error {
	if !e.open {
		return ErrNoSession
	}
	e.open = false
	e.decoder = nil
	e.pending = nil
	e.feed.buf = nil
	return nil
}

// nextFrame returns the next whole frame in pending and removes it. Bytes
// before the first accepted header are dropped. Until the stream format is
// known the first valid header decides it and an unsupported one is an
// error; after that only headers matching the stream are accepted and any
// other valid-looking window is junk. It returns a nil frame when more data
// is needed.
func (e *MP3Engine) nextFrame() ([]byte, mpeg.FrameHeader, error) {
	var w mpeg.Window
	for i := 0; i+len(w) <= len(e.pending); i++ {
		copy(w[:], e.pending[i:])
		if !mpeg.IsValidFrameHeader(w) {
			continue
		}

		hdr, err := mpeg.ParseFrameHeader(w)
		if e.info.SampleRate == 0 {
			if err != nil {
				return nil, hdr, err
			}
			if err := checkSupported(hdr); err != nil {
				return nil, hdr, err
			}
		} else if err != nil || !e.matches(hdr) {
			continue
		}

		if i > 0 {
			plog.Debugf("Skipped %d bytes of junk between frames", i)
			e.pending = e.pending[i:]
		}

		length := hdr.FrameLength()
		if len(e.pending) < length {
			return nil, hdr, nil
		}
		frame := e.pending[:length]
		e.pending = e.pending[length:]
		return frame, hdr, nil
	}

	// Keep a possible partial header
	if keep := len(w) - 1; len(e.pending) > keep {
		e.pending = e.pending[len(e.pending)-keep:]
	}
	return nil, mpeg.FrameHeader{}, nil
}

// checkSupported rejects streams go-mp3 cannot decode
func checkSupported(hdr mpeg.FrameHeader) error {
	if hdr.Layer != mpeg.Layer3 {
		return fmt.Errorf("unsupported %s %s stream (only Layer III is supported)", hdr.Version, hdr.Layer)
	}
	if hdr.Version == mpeg.Version25 {
		return errors.New("MPEG-2.5 streams are not supported")
	}
	if hdr.FreeFormat() {
		return errors.New("free-format bitstreams are not supported")
	}
	return nil
}

// matches reports whether hdr belongs to the configured stream
func (e *MP3Engine) matches(hdr mpeg.FrameHeader) bool {
	return hdr.Version == e.info.Version &&
		hdr.Layer == e.info.Layer &&
		hdr.SampleRate == e.info.SampleRate &&
		!hdr.FreeFormat()
}

// readUnit reads the PCM of one frame out of go-mp3 and splits it into channels
func (e *MP3Engine) readUnit() (audio.Unit, error) {
	n, err := e.decoder.Read(e.pcm)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return audio.Unit{}, errors.New("mp3: truncated frame")
		}
		return audio.Unit{}, fmt.Errorf("mp3 decode error: %w", err)
	}

	samples := n / mp3BytesPerFrame
	unit := audio.Unit{
		Samples: samples,
		Left:    make([]int16, samples),
		Right:   make([]int16, samples),
	}
	for i := 0; i < samples; i++ {
		unit.Left[i] = int16(binary.LittleEndian.Uint16(e.pcm[i*mp3BytesPerFrame:]))
		unit.Right[i] = int16(binary.LittleEndian.Uint16(e.pcm[i*mp3BytesPerFrame+2:]))
	}
	return unit, nil
}

func newStreamInfo(hdr mpeg.FrameHeader) StreamInfo {
	return StreamInfo{
		Version:        hdr.Version,
		Layer:          hdr.Layer,
		SampleRate:     hdr.SampleRate,
		Channels:       hdr.Channels(),
		Bitrate:        hdr.Bitrate,
		FrameSize:      hdr.SamplesPerFrame(),
		FrameLength:    hdr.FrameLength(),
		TotalFrames:    -1,
		EncoderDelay:   -1,
		EncoderPadding: -1,
	}
}
