// ABOUTME: Root command for the mpegsync CLI
// ABOUTME: Wires global flags, configuration loading and logging for all subcommands
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/mpegsync/internal/config"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/decode"
	"github.com/Resonate-Protocol/mpegsync/pkg/audio/source"
	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"
)

var plog = capnslog.NewPackageLogger("github.com/Resonate-Protocol/mpegsync", "cli")

// app holds state shared by the subcommands of one invocation
type app struct {
	configPath      string
	verbose         bool
	chunkSize       int
	configChunkSize int
	syncLimit       int64
	sampleRate      int
	gapless         bool

	cfg config.Config
}

// NewRootCommand builds the mpegsync command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mpegsync",
		Short: "Synchronize and decode MPEG audio streams",
		Long: `mpegsync - locate the first audio frame of an MPEG audio stream and decode it.

Leading ID3 tags and short stream headers are skipped, the stream is scanned
for a valid frame header, and frames are decoded to 16-bit PCM.

Sources may be local files, http(s):// URLs or ws(s):// URLs.

Examples:
  mpegsync probe song.mp3
  mpegsync decode song.mp3 -o song.wav
  mpegsync play http://radio.example.com/stream.mp3 --tui
  mpegsync batch *.mp3 --out-dir wav --jobs 8`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), a.cfg.Verbose)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.IntVar(&a.chunkSize, "chunk-size", 0, "bytes read per decode step (default 1024)")
	flags.IntVar(&a.configChunkSize, "config-chunk-size", 0, "bytes read per configure step (default 100)")
	flags.Int64Var(&a.syncLimit, "sync-limit", 0, "max bytes to scan for the first frame (0 = unbounded)")

	root.AddCommand(
		a.newProbeCommand(),
		a.newDecodeCommand(),
		a.newPlayCommand(),
		a.newBatchCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Execute runs the CLI until it finishes or is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig reads the config file and applies flags that were set
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = a.chunkSize
	}
	if flags.Changed("config-chunk-size") {
		cfg.ConfigChunkSize = a.configChunkSize
	}
	if flags.Changed("sync-limit") {
		cfg.SyncLimit = a.syncLimit
	}
	if flags.Changed("rate") {
		cfg.SampleRate = a.sampleRate
	}
	if flags.Changed("gapless") {
		cfg.Gapless = a.gapless
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	a.cfg = cfg
	return nil
}

// setupLogging installs the capnslog formatter on w
func setupLogging(w io.Writer, verbose bool) {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(w, verbose))
	if verbose {
		capnslog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		capnslog.SetGlobalLogLevel(capnslog.INFO)
	}
}

// openSession opens location and starts a decode session on a fresh engine.
// The caller closes both the session and the source.
func (a *app) openSession(ctx context.Context, location string) (io.ReadCloser, *decode.Session, error) {
	rc, err := source.Open(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	opts := []decode.Option{
		decode.WithChunkSize(a.cfg.ChunkSize),
		decode.WithConfigChunkSize(a.cfg.ConfigChunkSize),
		decode.WithSyncLimit(a.cfg.SyncLimit),
	}
	if size := source.Size(rc); size > 0 {
		opts = append(opts, decode.WithStreamSize(size))
	}

	s, err := decode.Open(rc, decode.NewMP3(), opts...)
	if err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("%s: %w", location, err)
	}
	return rc, s, nil
}
