// ABOUTME: MPEG audio frame header validation and field decoding
// ABOUTME: Implements the sync-word rule and derives frame length from a 4-byte window
package mpeg

import "fmt"

// Window is the 4-byte sliding window evaluated against the frame header rules.
// It always holds the most recently read 4 bytes in stream order.
type Window [4]byte

// Shift drops the oldest byte and appends b
func (w *Window) Shift(b byte) {
	w[0], w[1], w[2], w[3] = w[1], w[2], w[3], b
}

// Version is the MPEG audio version of a frame
type Version int

const (
	Version25 Version = iota
	VersionReserved
	Version2
	Version1
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version25:
		return "MPEG-2.5"
	default:
		return "reserved"
	}
}

// Layer is the MPEG audio layer of a frame
type Layer int

const (
	LayerReserved Layer = 0
	Layer3        Layer = 1
	Layer2        Layer = 2
	Layer1        Layer = 3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "Layer I"
	case Layer2:
		return "Layer II"
	case Layer3:
		return "Layer III"
	default:
		return "reserved"
	}
}

// ChannelMode is the channel mode field of a frame header
type ChannelMode int

const (
	ModeStereo ChannelMode = iota
	ModeJointStereo
	ModeDualChannel
	ModeMono
)

func (m ChannelMode) String() string {
	switch m {
	case ModeStereo:
		return "stereo"
	case ModeJointStereo:
		return "joint stereo"
	case ModeDualChannel:
		return "dual channel"
	default:
		return "mono"
	}
}

// layer2Disallowed is indexed by bitrate index; each value is a bitmask of
// channel modes that are not allowed for MPEG-1 Layer II at that bitrate.
var layer2Disallowed = [16]byte{0, 7, 7, 7, 0, 7, 0, 0, 0, 0, 0, 8, 8, 8, 8, 8}

// IsValidFrameHeader reports whether w satisfies every frame header rule
func IsValidFrameHeader(w Window) bool {
	b0, b1, b2, b3 := w[0], w[1], w[2], w[3]

	if b0 != 0xFF {
		return false
	}
	if b1&0xE0 != 0xE0 {
		return false
	}
	// Reserved version
	if b1&0x18 == 0x08 {
		return false
	}
	// No layer
	if b1&0x06 == 0x00 {
		return false
	}
	// Bad bitrate index
	if b2&0xF0 == 0xF0 {
		return false
	}
	// Bad sample rate index
	if b2&0x0C == 0x0C {
		return false
	}
	if b1&0x18 == 0x18 && b1&0x06 == 0x04 {
		if layer2Disallowed[b2>>4]&(1<<(b3>>6)) != 0 {
			return false
		}
	}
	// Reserved emphasis
	if b3&0x03 == 2 {
		return false
	}
	return true
}

var bitrates = [2][4][16]int{
	// MPEG-1
	{
		{},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	},
	// MPEG-2 and MPEG-2.5
	{
		{},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	},
}

var sampleRates = [4][3]int{
	Version25: {11025, 12000, 8000},
	Version2:  {22050, 24000, 16000},
	Version1:  {44100, 48000, 32000},
}

// FrameHeader holds the decoded fields of a valid frame header
type FrameHeader struct {
	Version      Version
	Layer        Layer
	Protected    bool // CRC follows the header
	BitrateIndex int
	Bitrate      int // kbps, 0 for free format
	SampleRate   int // Hz
	Padding      bool
	Mode         ChannelMode
	Emphasis     int
}

// ParseFrameHeader decodes the fields of w. It returns an error if w is not
// a valid frame header.
func ParseFrameHeader(w Window) (FrameHeader, error) {
	if !IsValidFrameHeader(w) {
		return FrameHeader{}, fmt.Errorf("invalid frame header: % x", w[:])
	}

	h := FrameHeader{
		Version:      Version((w[1] >> 3) & 0x03),
		Layer:        Layer((w[1] >> 1) & 0x03),
		Protected:    w[1]&0x01 == 0,
		BitrateIndex: int(w[2] >> 4),
		Padding:      (w[2]>>1)&0x01 == 1,
		Mode:         ChannelMode(w[3] >> 6),
		Emphasis:     int(w[3] & 0x03),
	}

	table := 1
	if h.Version == Version1 {
		table = 0
	}
	h.Bitrate = bitrates[table][h.Layer][h.BitrateIndex]
	h.SampleRate = sampleRates[h.Version][(w[2]>>2)&0x03]

	return h, nil
}

// Channels returns the number of audio channels
func (h FrameHeader) Channels() int {
	if h.Mode == ModeMono {
		return 1
	}
	return 2
}

// FreeFormat reports whether the frame uses the free bitrate index
func (h FrameHeader) FreeFormat() bool {
	return h.BitrateIndex == 0
}

// SamplesPerFrame returns the number of PCM samples per channel in the frame
func (h FrameHeader) SamplesPerFrame() int {
	switch h.Layer {
	case Layer1:
		return 384
	case Layer2:
		return 1152
	default:
		if h.Version == Version1 {
			return 1152
		}
		return 576
	}
}

// FrameLength returns the frame size in bytes, including the header.
// It returns 0 for free-format frames, whose size is not encoded in the header.
func (h FrameHeader) FrameLength() int {
	if h.FreeFormat() || h.SampleRate == 0 {
		return 0
	}
	pad := 0
	if h.Padding {
		pad = 1
	}
	if h.Layer == Layer1 {
		return (12*h.Bitrate*1000/h.SampleRate + pad) * 4
	}
	return h.SamplesPerFrame()/8*h.Bitrate*1000/h.SampleRate + pad
}

// SideInfoSize returns the size of the Layer III side information that
// follows the header (and CRC, if any).
func (h FrameHeader) SideInfoSize() int {
	if h.Version == Version1 {
		if h.Mode == ModeMono {
			return 17
		}
		return 32
	}
	if h.Mode == ModeMono {
		return 9
	}
	return 17
}
