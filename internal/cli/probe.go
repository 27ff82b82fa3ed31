// ABOUTME: probe subcommand
// ABOUTME: Synchronizes a stream and prints its frame layout and stream info
package cli

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio/decode"
	"github.com/spf13/cobra"
)

func (a *app) newProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <source>",
		Short: "Print stream info without decoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, s, err := a.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer rc.Close()
			defer s.Close()

			printInfo(cmd.OutOrStdout(), args[0], s, a.cfg.Verbose)
			return nil
		},
	}
}

func printInfo(w io.Writer, location string, s *decode.Session, verbose bool) {
	info := s.Info()
	h := s.Header()

	fmt.Fprintf(w, "source:       %s\n", location)
	fmt.Fprintf(w, "audio start:  %d\n", s.AudioStart())
	fmt.Fprintf(w, "skipped:      %d\n", s.Skipped())
	fmt.Fprintf(w, "format:       %s %s\n", info.Version, info.Layer)
	fmt.Fprintf(w, "sample rate:  %d\n", info.SampleRate)
	fmt.Fprintf(w, "channels:     %d (%s)\n", info.Channels, h.Mode)
	fmt.Fprintf(w, "bitrate:      %d\n", info.Bitrate)
	fmt.Fprintf(w, "frame size:   %d\n", info.FrameSize)
	fmt.Fprintf(w, "frame length: %d\n", info.FrameLength)
	fmt.Fprintf(w, "total frames: %s\n", optional(info.TotalFrames))
	fmt.Fprintf(w, "delay:        %s\n", optional(info.EncoderDelay))
	fmt.Fprintf(w, "padding:      %s\n", optional(info.EncoderPadding))
	pcm := info.Format()
	fmt.Fprintf(w, "output:       %d Hz, %d channels, %d-bit PCM\n", pcm.SampleRate, pcm.Channels, pcm.BitDepth)
	if info.Encoder != "" {
		fmt.Fprintf(w, "encoder:      %s\n", info.Encoder)
	}
	if verbose {
		fmt.Fprintf(w, "protected:    %v\n", h.Protected)
		fmt.Fprintf(w, "session:      %s\n", s.ID())
	}
}

func optional(v int) string {
	if v < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d", v)
}
