// ABOUTME: Audio output package for decoded units
// ABOUTME: Provides the Output interface with speaker and WAV file implementations
// Package output sends decoded units to a sink.
//
// Oto plays through the default audio device; WAV writes a 16-bit PCM file.
//
// Example:
//
//	out := output.NewWAV("out.wav")
//	err := out.Open(44100, 2)
//	err = out.Write(unit)
//	err = out.Close()
package output
