// ABOUTME: Audio decoder package for MPEG audio streams
// ABOUTME: Provides the Engine contract, the go-mp3 engine, the decode loop driver and sessions
// Package decode drives a stateful decode engine over a byte stream.
//
// A Session synchronizes the stream onto its first frame (see package mpeg),
// configures the engine, then yields one decoded Unit per call to Next.
// The Driver behind it first drains output the engine already buffered, then
// feeds fixed-size chunks until the engine produces output, and flushes the
// engine once the stream ends.
//
// Example:
//
//	s, err := decode.Open(r, decode.NewMP3())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	for {
//	    unit, err := s.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // use unit.Left, unit.Right
//	}
package decode
