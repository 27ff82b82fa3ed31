// ABOUTME: Tests for gapless trimming
// ABOUTME: Feeds numbered units through a trimmer and checks which samples survive
package decode

import (
	"testing"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
)

// numberedUnit returns a unit whose samples count up from start
func numberedUnit(start, n int) audio.Unit {
	u := audio.Unit{Samples: n, Left: make([]int16, n), Right: make([]int16, n)}
	for i := 0; i < n; i++ {
		u.Left[i] = int16(start + i)
		u.Right[i] = -int16(start + i)
	}
	return u
}

func TestTrimmer_DelayAndPadding(t *testing.T) {
	tr := NewTrimmer(StreamInfo{EncoderDelay: 576, EncoderPadding: 1105})
	if tr == nil {
		t.Fatal("expected a trimmer")
	}

	var got []int16
	var right []int16
	for i := 0; i < 4; i++ {
		u := tr.Unit(numberedUnit(i*1152, 1152))
		if len(u.Left) != u.Samples || len(u.Right) != u.Samples {
			t.Fatalf("unit %d: buffers do not match %d samples", i, u.Samples)
		}
		got = append(got, u.Left...)
		right = append(right, u.Right...)
	}

	// 4608 samples less 576+529 at the start and 1105-529 at the end
	if len(got) != 2927 {
		t.Fatalf("expected 2927 samples, got %d", len(got))
	}
	if got[0] != 1105 {
		t.Errorf("expected first sample 1105, got %d", got[0])
	}
	if got[len(got)-1] != 4031 {
		t.Errorf("expected last sample 4031, got %d", got[len(got)-1])
	}
	if right[0] != -1105 {
		t.Errorf("expected right channel to be trimmed alike, got %d", right[0])
	}
}

func TestTrimmer_SmallPadding(t *testing.T) {
	tr := NewTrimmer(StreamInfo{EncoderDelay: 0, EncoderPadding: 100})

	u := tr.Unit(numberedUnit(0, 1152))
	if u.Samples != 1152-DecoderDelay {
		t.Fatalf("expected %d samples, got %d", 1152-DecoderDelay, u.Samples)
	}
	if u.Left[0] != DecoderDelay {
		t.Errorf("expected first sample %d, got %d", DecoderDelay, u.Left[0])
	}
}

func TestTrimmer_NoGaplessInfo(t *testing.T) {
	if tr := NewTrimmer(StreamInfo{EncoderDelay: -1, EncoderPadding: -1}); tr != nil {
		t.Error("expected no trimmer without delay and padding")
	}
}

func TestTrimmer_EmptyUnit(t *testing.T) {
	tr := NewTrimmer(StreamInfo{EncoderDelay: 576, EncoderPadding: 1105})
	if u := tr.Unit(audio.Unit{}); !u.Empty() {
		t.Errorf("expected empty unit, got %d samples", u.Samples)
	}
}
