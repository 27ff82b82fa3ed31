// ABOUTME: decode subcommand
// ABOUTME: Decodes a stream to a WAV file
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/decode"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/output"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/resample"
	"github.com/spf13/cobra"
)

func (a *app) newDecodeCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "decode <source>",
		Short: "Decode a stream to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = wavName(args[0])
			}
			res, err := a.decodeToWAV(cmd.Context(), args[0], outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d samples -> %s\n", args[0], res.units, res.samples, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output WAV path (default: source name with .wav)")
	cmd.Flags().IntVar(&a.sampleRate, "rate", 0, "resample to this rate in Hz (0 = keep the stream rate)")
	cmd.Flags().BoolVar(&a.gapless, "gapless", false, "trim encoder delay and padding recorded in a LAME tag")
	return cmd
}

type decodeResult struct {
	units   int64
	samples int64
}

// decodeToWAV decodes location into a WAV file at path
func (a *app) decodeToWAV(ctx context.Context, location, path string) (decodeResult, error) {
	rc, s, err := a.openSession(ctx, location)
	if err != nil {
		return decodeResult{}, err
	}
	defer rc.Close()
	defer s.Close()

	info := s.Info()
	rate := info.SampleRate
	var rs *resample.Resampler
	if a.cfg.SampleRate > 0 && a.cfg.SampleRate != rate {
		plog.Debugf("Resampling %s from %d Hz to %d Hz", location, rate, a.cfg.SampleRate)
		rs = resample.New(rate, a.cfg.SampleRate)
		rate = a.cfg.SampleRate
	}

	var trim *decode.Trimmer
	if a.cfg.Gapless {
		if trim = decode.NewTrimmer(info); trim != nil {
			plog.Debugf("Trimming %s: delay %d, padding %d", location, info.EncoderDelay, info.EncoderPadding)
		}
	}

	out := output.NewWAV(path)
	if err := out.Open(rate, info.Channels); err != nil {
		return decodeResult{}, err
	}

	err = s.Each(func(unit audio.Unit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if trim != nil {
			if unit = trim.Unit(unit); unit.Empty() {
				return nil
			}
		}
		if rs != nil {
			unit = rs.Unit(unit)
		}
		return out.Write(unit)
	})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return decodeResult{}, fmt.Errorf("%s: %w", location, err)
	}

	return decodeResult{units: s.Units(), samples: s.Samples()}, nil
}

// wavName derives an output file name from a source location
func wavName(location string) string {
	base := filepath.Base(location)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "stream"
	}
	return base + ".wav"
}
