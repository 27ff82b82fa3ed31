// ABOUTME: Gapless trimming of decoded units
// ABOUTME: Drops encoder delay from the start and padding from the end of a stream
package decode

import "github.com/Resonate-Protocol/mpegsync/pkg/audio"

// DecoderDelay is the go-mp3 synthesis filterbank delay in samples
const DecoderDelay = 529

// Trimmer removes the encoder delay and padding recorded in a LAME tag from a
// unit stream. The padding is held back as units arrive and never released.
type Trimmer struct {
	skip int
	hold int
	tail audio.Unit
}

// NewTrimmer returns a trimmer for info, or nil when the stream carries no
// delay and padding.
func NewTrimmer(info StreamInfo) *Trimmer {
	if info.EncoderDelay < 0 || info.EncoderPadding < 0 {
		return nil
	}
	return &Trimmer{
		skip: info.EncoderDelay + DecoderDelay,
		hold: max(info.EncoderPadding-DecoderDelay, 0),
	}
}

// Unit returns the samples of u that can be released. The result may be empty.
func (t *Trimmer) Unit(u audio.Unit) audio.Unit {
	if t.skip > 0 {
		n := min(t.skip, u.Samples)
		t.skip -= n
		u = sliceUnit(u, n, u.Samples)
	}
	if t.hold == 0 || u.Empty() {
		return u
	}

	t.tail = joinUnits(t.tail, u)
	release := t.tail.Samples - t.hold
	if release <= 0 {
		return audio.Unit{}
	}
	out := sliceUnit(t.tail, 0, release)
	t.tail = sliceUnit(t.tail, release, t.tail.Samples)
	return out
}

func sliceUnit(u audio.Unit, from, to int) audio.Unit {
	return audio.Unit{
		Samples: to - from,
		Left:    u.Left[from:to:to],
		Right:   u.Right[from:to:to],
	}
}

func joinUnits(a, b audio.Unit) audio.Unit {
	left := make([]int16, 0, a.Samples+b.Samples)
	right := make([]int16, 0, a.Samples+b.Samples)
	return audio.Unit{
		Samples: a.Samples + b.Samples,
		Left:    append(append(left, a.Left...), b.Left...),
		Right:   append(append(right, a.Right...), b.Right...),
	}
}
