// ABOUTME: Tests for the mpegsync command tree
// ABOUTME: Runs probe, decode, batch and version against synthetic MP3 files
package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/mpegsync/pkg/mpeg"
	"github.com/go-audio/wav"
)

// silentMP3 returns an optional ID3 tag of tagLen bytes followed by frames
// silent MPEG-1 Layer III frames (128 kbps, 44.1 kHz, stereo, 417 bytes each)
func silentMP3(tagLen, frames int) []byte {
	var b []byte
	if tagLen > 0 {
		b = append(b, 'I', 'D', '3', 0x04, 0x00, 0x00,
			byte(tagLen>>21)&0x7F, byte(tagLen>>14)&0x7F, byte(tagLen>>7)&0x7F, byte(tagLen)&0x7F)
		b = append(b, make([]byte, tagLen)...)
	}
	for i := 0; i < frames; i++ {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
		b = append(b, frame...)
	}
	return b
}

// lameMP3 returns an Info frame with a LAME tag carrying delay and padding,
// followed by frames silent frames
func lameMP3(frames, delay, padding int) []byte {
	info := make([]byte, 417)
	copy(info, []byte{0xFF, 0xFB, 0x90, 0x00})
	copy(info[36:], "Info")
	info[43] = 0x01
	info[47] = byte(frames)
	copy(info[48:], "LAME3.100")
	gapless := delay<<12 | padding
	info[69] = byte(gapless >> 16)
	info[70] = byte(gapless >> 8)
	info[71] = byte(gapless)
	return append(info, silentMP3(0, frames)...)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func wavSamples(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return len(buf.Data), int(dec.NumChans)
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "mpegsync") {
		t.Errorf("expected 'mpegsync', got: %s", stdout)
	}
}

func TestProbe(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tagged.mp3", silentMP3(50, 5))

	stdout, _, err := runCmd(t, "probe", path)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}

	for _, want := range []string{
		"audio start:  60\n",
		"skipped:      0\n",
		"sample rate:  44100\n",
		"channels:     2 (",
		"bitrate:      128\n",
		"frame size:   1152\n",
		"total frames: 5\n",
		"delay:        unknown\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestProbe_NoSync(t *testing.T) {
	path := writeFile(t, t.TempDir(), "noise.mp3", make([]byte, 4096))

	_, _, err := runCmd(t, "probe", path)
	if !errors.Is(err, mpeg.ErrSyncNotFound) {
		t.Errorf("expected ErrSyncNotFound, got %v", err)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	_, _, err := runCmd(t, "probe", filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSyncLimitFromConfigAndFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "junk.mp3", append(make([]byte, 100), silentMP3(0, 2)...))
	cfg := writeFile(t, dir, "mpegsync.yaml", []byte("sync_limit: 10\n"))

	_, _, err := runCmd(t, "--config", cfg, "probe", path)
	if !errors.Is(err, mpeg.ErrSyncNotFound) {
		t.Fatalf("expected ErrSyncNotFound with config limit, got %v", err)
	}

	stdout, _, err := runCmd(t, "--config", cfg, "--sync-limit", "0", "probe", path)
	if err != nil {
		t.Fatalf("expected flag to lift the limit, got %v", err)
	}
	if !strings.Contains(stdout, "skipped:      100\n") {
		t.Errorf("expected 100 bytes skipped, got:\n%s", stdout)
	}
}

func TestInvalidFlag(t *testing.T) {
	_, _, err := runCmd(t, "--chunk-size", "-1", "version")
	if err == nil {
		t.Error("expected error for negative chunk size")
	}
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "song.mp3", silentMP3(20, 4))
	out := filepath.Join(dir, "song.wav")

	stdout, _, err := runCmd(t, "--chunk-size", "300", "decode", path, "-o", out)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(stdout, "4 frames, 4608 samples") {
		t.Errorf("unexpected output: %s", stdout)
	}

	samples, channels := wavSamples(t, out)
	if channels != 2 {
		t.Errorf("expected 2 channels, got %d", channels)
	}
	if samples != 4*1152*2 {
		t.Errorf("expected %d interleaved samples, got %d", 4*1152*2, samples)
	}
}

func TestDecode_Resample(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "song.mp3", silentMP3(0, 4))
	out := filepath.Join(dir, "song.wav")

	if _, _, err := runCmd(t, "decode", path, "-o", out, "--rate", "22050"); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("failed to open wav: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("failed to read wav: %v", err)
	}
	if dec.SampleRate != 22050 {
		t.Errorf("expected 22050 Hz, got %d", dec.SampleRate)
	}
	if len(buf.Data) != 4*576*2 {
		t.Errorf("expected %d interleaved samples, got %d", 4*576*2, len(buf.Data))
	}
}

func TestDecode_Gapless(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "song.mp3", lameMP3(4, 576, 1105))

	tests := []struct {
		name    string
		args    []string
		samples int
	}{
		{"untrimmed", nil, 4 * 1152},
		{"trimmed", []string{"--gapless"}, 4*1152 - (576 + 529) - (1105 - 529)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".wav")
			args := append([]string{"decode", path, "-o", out}, tt.args...)
			if _, _, err := runCmd(t, args...); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			samples, _ := wavSamples(t, out)
			if samples != tt.samples*2 {
				t.Errorf("expected %d interleaved samples, got %d", tt.samples*2, samples)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "wav")
	var sources []string
	for i, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		sources = append(sources, writeFile(t, dir, name, silentMP3(0, i+1)))
	}

	args := append([]string{"batch", "--out-dir", outDir, "--jobs", "2"}, sources...)
	stdout, _, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	for i, name := range []string{"a.wav", "b.wav", "c.wav"} {
		samples, _ := wavSamples(t, filepath.Join(outDir, name))
		if want := (i + 1) * 1152 * 2; samples != want {
			t.Errorf("%s: expected %d samples, got %d", name, want, samples)
		}
		if !strings.Contains(stdout, name) {
			t.Errorf("expected %s in output", name)
		}
	}
}

func TestBatch_FailsOnBadSource(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.mp3", silentMP3(0, 2))
	bad := writeFile(t, dir, "bad.mp3", make([]byte, 1000))

	_, _, err := runCmd(t, "batch", "--out-dir", filepath.Join(dir, "wav"), good, bad)
	if !errors.Is(err, mpeg.ErrSyncNotFound) {
		t.Errorf("expected ErrSyncNotFound, got %v", err)
	}
}

func TestOutputPaths_Duplicates(t *testing.T) {
	_, err := outputPaths("out", []string{"x/song.mp3", "y/song.mp3"})
	if err == nil {
		t.Error("expected error for colliding output names")
	}
}

func TestWavName(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"song.mp3", "song.wav"},
		{"/music/album/track01.mp3", "track01.wav"},
		{"http://example.com/live/stream.mp3?token=abc", "stream.wav"},
		{"noext", "noext.wav"},
	}

	for _, tt := range tests {
		if got := wavName(tt.location); got != tt.want {
			t.Errorf("wavName(%q) = %q, expected %q", tt.location, got, tt.want)
		}
	}
}
