// ABOUTME: MPEG audio stream synchronization package
// ABOUTME: Skips leading metadata and locates the first valid frame header
// Package mpeg locates the start of decodable MPEG audio inside a byte stream.
//
// A stream may begin with an ID3v2 tag block and/or a short "AiD" header
// before the first audio frame. The Scanner skips both and then slides a
// 4-byte window over the stream, one byte at a time, until the window holds
// a valid frame header.
//
// Example:
//
//	c := mpeg.NewCursor(r)
//	window, err := mpeg.LocateAndSkipHeaders(c)
//	if err != nil {
//	    return err
//	}
//	window, err = mpeg.FindSyncWord(c, window)
//	hdr := mpeg.ParseFrameHeader(window)
package mpeg
