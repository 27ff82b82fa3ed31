// ABOUTME: Leading metadata block formats that precede MPEG audio frames
// ABOUTME: Decodes the ID3v2 tag length and the short "AiD" header length
package mpeg

import "bytes"

const (
	// TagHeaderSize is the full size of an ID3v2 tag header
	TagHeaderSize = 10
	// ShortHeaderLengthSize is the size of the length field after the short header magic
	ShortHeaderLengthSize = 2
)

var (
	tagMagic   = []byte("ID3")
	shortMagic = []byte("AiD\x01")
)

// IsTagHeader reports whether the window starts with the ID3v2 magic
func IsTagHeader(w Window) bool {
	return bytes.Equal(w[:3], tagMagic)
}

// IsShortHeader reports whether the window holds the short header magic
func IsShortHeader(w Window) bool {
	return bytes.Equal(w[:], shortMagic)
}

// DecodeSynchsafe decodes a 4-byte synchsafe integer. Bit 7 of every byte is ignored.
func DecodeSynchsafe(b [4]byte) int64 {
	var n int64
	for _, v := range b {
		n = n<<7 + int64(v&0x7F)
	}
	return n
}

// DecodeShortLength decodes the 2-byte little-endian short header length
func DecodeShortLength(b [2]byte) int64 {
	return int64(b[0]) + 256*int64(b[1])
}
