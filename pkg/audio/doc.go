// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and Unit types and sample conversion functions
// Package audio provides the audio types shared by decoders and outputs.
//
// This package defines:
//   - Format: Describes an audio stream (codec, sample rate, channels, bit depth)
//   - Unit: One decoded frame of PCM audio split into left and right buffers
//
// Decoded samples are 16-bit. Outputs that work in a 24-bit range use
// SampleFromInt16 and SampleToInt16 to convert.
//
// Example:
//
//	unit, err := session.Next()
//	samples := unit.Interleaved(2) // L R L R ... in 24-bit range
package audio
