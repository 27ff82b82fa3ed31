// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats, decoded units and sample conversions
package audio

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Unit is one decoded unit of output: a set of per-channel sample buffers
type Unit struct {
	Samples int     // samples per channel, 0 when nothing was decoded
	Left    []int16 // len == Samples
	Right   []int16 // len == Samples; equal to Left for mono streams
}

// Empty reports whether the unit carries no samples
func (u Unit) Empty() bool {
	return u.Samples == 0
}

// Interleaved returns the unit as interleaved int32 samples (24-bit range)
// for the given channel count
func (u Unit) Interleaved(channels int) []int32 {
	if channels == 1 {
		out := make([]int32, u.Samples)
		for i := 0; i < u.Samples; i++ {
			out[i] = SampleFromInt16(u.Left[i])
		}
		return out
	}
	out := make([]int32, u.Samples*2)
	for i := 0; i < u.Samples; i++ {
		out[i*2] = SampleFromInt16(u.Left[i])
		out[i*2+1] = SampleFromInt16(u.Right[i])
	}
	return out
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	// Left-shift to position 16-bit value in upper bits
	return int32(sample) << 8
}
