// ABOUTME: Xing/Info and LAME tag parsing from the first audio frame
// ABOUTME: Extracts total frame count and encoder delay/padding for gapless playback
package mpeg

import (
	"bytes"
	"encoding/binary"
)

const (
	xingFlagFrames  = 0x01
	xingFlagBytes   = 0x02
	xingFlagTOC     = 0x04
	xingFlagQuality = 0x08
)

// XingInfo holds the fields of a Xing/Info frame and an optional LAME tag
type XingInfo struct {
	Frames  int // total audio frames, -1 when absent
	Bytes   int // total stream bytes, -1 when absent
	Encoder string
	Delay   int // encoder delay in samples, -1 when absent
	Padding int // encoder padding in samples, -1 when absent
}

// ParseXing looks for a Xing or Info header inside frame, which must start
// with the frame header. It reports false if the frame carries none.
func ParseXing(frame []byte) (XingInfo, bool) {
	if len(frame) < 4 {
		return XingInfo{}, false
	}
	var w Window
	copy(w[:], frame[:4])
	h, err := ParseFrameHeader(w)
	if err != nil || h.Layer != Layer3 {
		return XingInfo{}, false
	}

	offset := 4 + h.SideInfoSize()
	if h.Protected {
		offset += 2
	}
	if offset+8 > len(frame) {
		return XingInfo{}, false
	}
	data := frame[offset:]
	if !bytes.HasPrefix(data, []byte("Xing")) && !bytes.HasPrefix(data, []byte("Info")) {
		return XingInfo{}, false
	}

	info := XingInfo{Frames: -1, Bytes: -1, Delay: -1, Padding: -1}
	flags := binary.BigEndian.Uint32(data[4:8])
	pos := 8

	if flags&xingFlagFrames != 0 {
		if pos+4 > len(data) {
			return info, true
		}
		info.Frames = int(binary.BigEndian.Uint32(data[pos:]))
		pos += 4
	}
	if flags&xingFlagBytes != 0 {
		if pos+4 > len(data) {
			return info, true
		}
		info.Bytes = int(binary.BigEndian.Uint32(data[pos:]))
		pos += 4
	}
	if flags&xingFlagTOC != 0 {
		pos += 100
	}
	if flags&xingFlagQuality != 0 {
		pos += 4
	}

	// LAME tag: 9-byte encoder string, gapless info 21 bytes in
	if pos+24 > len(data) {
		return info, true
	}
	tag := data[pos:]
	if !isPrintable(tag[:4]) {
		return info, true
	}
	info.Encoder = string(bytes.TrimRight(tag[:9], "\x00 "))
	gapless := uint32(tag[21])<<16 | uint32(tag[22])<<8 | uint32(tag[23])
	info.Delay = int(gapless >> 12)
	info.Padding = int(gapless & 0xFFF)

	return info, true
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
