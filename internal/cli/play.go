// ABOUTME: play subcommand
// ABOUTME: Decodes a stream to the speaker with an optional TUI
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Resonate-Protocol/mpegsync/internal/ui"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/decode"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/output"
	"github.com/spf13/cobra"
)

// units between TUI progress updates
const progressInterval = 10

func (a *app) newPlayCommand() *cobra.Command {
	var (
		useTUI bool
		volume int
	)

	cmd := &cobra.Command{
		Use:   "play <source>",
		Short: "Play a stream through the speaker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("volume") {
				a.cfg.Volume = volume
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			if useTUI {
				// TUI mode: log only to file
				f, err := os.OpenFile(a.cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
				if err != nil {
					return fmt.Errorf("error opening log file: %w", err)
				}
				defer f.Close()
				setupLogging(f, a.cfg.Verbose)
			}

			rc, s, err := a.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer rc.Close()
			defer s.Close()

			info := s.Info()
			out := output.NewOto()
			out.SetVolume(a.cfg.Volume)
			if err := out.Open(info.SampleRate, info.Channels); err != nil {
				return err
			}
			defer out.Close()

			if !useTUI {
				plog.Infof("Playing %s: %s %s, %d Hz, %d kbps", args[0], info.Version, info.Layer, info.SampleRate, info.Bitrate)
				return playLoop(cmd.Context(), s, out, nil)
			}
			return playWithTUI(cmd.Context(), args[0], s, out, a.cfg.Volume)
		},
	}

	cmd.Flags().BoolVar(&useTUI, "tui", false, "show the playback TUI")
	cmd.Flags().IntVar(&volume, "volume", 100, "playback volume (0-100)")
	return cmd
}

func playWithTUI(ctx context.Context, location string, s *decode.Session, out *output.Oto, volume int) error {
	t := ui.New(location, volume)
	info := s.Info()
	t.Update(ui.StatusMsg{Info: &info, AudioStart: s.AudioStart(), State: ui.StatePlaying})

	done := make(chan error, 1)
	go func() {
		err := playLoop(ctx, s, out, t)
		status := ui.StatusMsg{Units: s.Units(), Samples: s.Samples(), State: ui.StateFinished}
		if err != nil {
			status.Err = err
		}
		t.Update(status)
		done <- err
	}()

	if err := t.Start(); err != nil {
		select {
		case t.Controls().Quit <- ui.QuitMsg{}:
		default:
		}
		<-done
		t.Stop()
		return fmt.Errorf("tui failed: %w", err)
	}

	// The TUI signalled quit; wait for the loop to stop before closing it
	err := <-done
	t.Stop()
	return err
}

// playLoop writes units to out until the stream ends, ctx is done or the
// TUI asks to quit
func playLoop(ctx context.Context, s *decode.Session, out *output.Oto, t *ui.TUI) error {
	var controls *ui.VolumeControl
	if t != nil {
		controls = t.Controls()
	}

	for {
		if controls != nil {
			select {
			case c := <-controls.Changes:
				out.SetVolume(c.Volume)
				out.SetMuted(c.Muted)
			case <-controls.Quit:
				plog.Infof("Playback stopped by user")
				return nil
			default:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		unit, err := s.Next()
		if errors.Is(err, io.EOF) {
			plog.Infof("Playback finished: %d frames", s.Units())
			return nil
		}
		if err != nil {
			return err
		}
		if err := out.Write(unit); err != nil {
			return err
		}

		if t != nil && s.Units()%progressInterval == 0 {
			t.Update(ui.StatusMsg{Units: s.Units(), Samples: s.Samples()})
		}
	}
}
