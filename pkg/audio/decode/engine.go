// ABOUTME: Decode engine contract
// ABOUTME: Stateful engine interface with tagged chunk/drain/end-of-stream inputs
package decode

import (
	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	"github.com/Resonate-Protocol/mpegsync/pkg/mpeg"
)

// ConfigStatus reports the outcome of a Configure call
type ConfigStatus int

const (
	// NeedMore means the engine needs the next chunk to finish configuring
	NeedMore ConfigStatus = iota
	// Configured means stream parameters are fully determined
	Configured
)

func (s ConfigStatus) String() string {
	if s == Configured {
		return "configured"
	}
	return "need-more"
}

// InputKind distinguishes the three engine interactions
type InputKind int

const (
	// KindChunk feeds stream bytes
	KindChunk InputKind = iota
	// KindDrain asks for output the engine has already buffered
	KindDrain
	// KindEndOfStream tells the engine no more bytes will follow and it
	// should flush whatever it can still decode
	KindEndOfStream
)

func (k InputKind) String() string {
	switch k {
	case KindChunk:
		return "chunk"
	case KindDrain:
		return "drain"
	default:
		return "end-of-stream"
	}
}

// Input is one engine input
type Input struct {
	Kind InputKind
	Data []byte // set only for KindChunk
}

// Chunk wraps stream bytes as an engine input. The engine must copy what it
// keeps; the caller reuses b.
func Chunk(b []byte) Input {
	return Input{Kind: KindChunk, Data: b}
}

var (
	// Drain asks the engine for already buffered output
	Drain = Input{Kind: KindDrain}
	// EndOfStream asks the engine to flush at the end of the stream
	EndOfStream = Input{Kind: KindEndOfStream}
)

// StreamInfo describes a configured stream
type StreamInfo struct {
	Version        mpeg.Version
	Layer          mpeg.Layer
	SampleRate     int
	Channels       int
	Bitrate        int // kbps of the first frame
	FrameSize      int // samples per channel per frame
	FrameLength    int // bytes per frame of the first frame
	TotalFrames    int // -1 when unknown
	EncoderDelay   int // -1 when unknown
	EncoderPadding int // -1 when unknown
	Encoder        string
}

// Format returns the PCM format of decoded units
func (i StreamInfo) Format() audio.Format {
	return audio.Format{
		Codec:      "mp3",
		SampleRate: i.SampleRate,
		Channels:   i.Channels,
		BitDepth:   16,
	}
}

// Engine is a stateful decode engine. An engine holds at most one session:
// Open starts it, Close ends it, and every other call needs an open session.
type Engine interface {
	// Open starts a session. It fails with ErrSessionActive if one is open.
	Open() error

	// Configure feeds bytes until stream parameters are known
	Configure(chunk []byte) (ConfigStatus, error)

	// Decode performs one engine interaction and returns at most one unit.
	// A zero-sample unit means no output is available yet.
	Decode(in Input) (audio.Unit, error)

	// Info returns the stream parameters once configured
	Info() StreamInfo

	// Close ends the session
	Close() error
}
