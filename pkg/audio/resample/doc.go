// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded units between sample rates
// Package resample provides sample rate conversion for decoded units.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(22050, 44100)
//	out := r.Unit(unit)
package resample
