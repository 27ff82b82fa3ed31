// ABOUTME: batch subcommand
// ABOUTME: Decodes many sources to WAV files concurrently, one engine per source
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) newBatchCommand() *cobra.Command {
	var (
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "batch <source>...",
		Short: "Decode several streams to WAV files in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				a.cfg.Jobs = jobs
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			paths, err := outputPaths(outDir, args)
			if err != nil {
				return err
			}

			results := make([]decodeResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Jobs)

			for i, location := range args {
				g.Go(func() error {
					res, err := a.decodeToWAV(ctx, location, paths[i])
					if err != nil {
						return err
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, location := range args {
				fmt.Fprintf(w, "%s: %d frames, %d samples -> %s\n", location, results[i].units, results[i].samples, paths[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for WAV files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "number of streams decoded at once")
	cmd.Flags().IntVar(&a.sampleRate, "rate", 0, "resample to this rate in Hz (0 = keep the stream rate)")
	cmd.Flags().BoolVar(&a.gapless, "gapless", false, "trim encoder delay and padding recorded in a LAME tag")
	return cmd
}

// outputPaths maps each source to a distinct WAV path in dir
func outputPaths(dir string, locations []string) ([]string, error) {
	paths := make([]string, len(locations))
	seen := make(map[string]string, len(locations))
	for i, location := range locations {
		p := filepath.Join(dir, wavName(location))
		if prev, ok := seen[p]; ok {
			return nil, fmt.Errorf("%s and %s both decode to %s", prev, location, p)
		}
		seen[p] = location
		paths[i] = p
	}
	return paths, nil
}
