// ABOUTME: Decode session handle
// ABOUTME: Synchronizes a stream, configures an engine and yields decoded units
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
	"github.com/Resonate-Protocol/mpegsync/pkg/mpeg"
	"github.com/google/uuid"
)

// DefaultConfigChunkSize is the number of bytes fed per Configure call
const DefaultConfigChunkSize = 100

// Options configures a Session
type Options struct {
	ChunkSize       int   // bytes per decode read
	ConfigChunkSize int   // bytes per configure read
	SyncLimit       int64 // max bytes shifted while scanning for sync, 0 = unbounded
	StreamSize      int64 // total stream size if known, used to estimate frame count
}

// Option sets a Session option
type Option func(*Options)

// WithChunkSize sets the number of bytes read per decode step
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithConfigChunkSize sets the number of bytes read per configure step
func WithConfigChunkSize(n int) Option {
	return func(o *Options) { o.ConfigChunkSize = n }
}

// WithSyncLimit bounds how many bytes may be skipped looking for the first frame
func WithSyncLimit(n int64) Option {
	return func(o *Options) { o.SyncLimit = n }
}

// WithStreamSize tells the session the total stream size in bytes
func WithStreamSize(n int64) Option {
	return func(o *Options) { o.StreamSize = n }
}

// Session owns one engine session over one stream. It is not safe for
// concurrent use.
type Session struct {
	id     uuid.UUID
	src    io.Reader
	engine Engine
	driver *Driver
	opts   Options

	header     mpeg.FrameHeader
	info       StreamInfo
	audioStart int64
	skipped    int64

	units   int64
	samples int64
	eof     bool
	closed  bool
}

// Open starts a session on engine and positions r at its first audio frame.
// It skips leading metadata, scans for a valid frame header and configures
// the engine. On failure the engine session is closed again.
func Open(r io.Reader, engine Engine, opts ...Option) (*Session, error) {
	o := Options{
		ChunkSize:       DefaultChunkSize,
		ConfigChunkSize: DefaultConfigChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ConfigChunkSize <= 0 {
		o.ConfigChunkSize = DefaultConfigChunkSize
	}

	if err := engine.Open(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.New(),
		src:    r,
		engine: engine,
		opts:   o,
	}
	if err := s.start(); err != nil {
		_ = engine.Close()
		return nil, err
	}

	plog.Infof("Session %s opened: audio starts at byte %d (%d bytes skipped)", s.id, s.audioStart, s.skipped)
	return s, nil
}

func (s *Session) start() error {
	c := mpeg.NewCursor(s.src)
	sc := mpeg.NewScanner(c)
	sc.SetShiftLimit(s.opts.SyncLimit)

	window, err := sc.Run()
	if err != nil {
		return fmt.Errorf("failed to synchronize stream: %w", err)
	}
	s.audioStart = c.Offset() - int64(len(window))
	s.skipped = sc.Shifts()
	if sc.TagSize() > 0 {
		plog.Debugf("Skipped %d byte tag header", sc.TagSize())
	}
	if sc.ShortHeaderSize() > 0 {
		plog.Debugf("Skipped %d byte short header", sc.ShortHeaderSize())
	}

	s.header, err = mpeg.ParseFrameHeader(window)
	if err != nil {
		return err
	}

	if err := s.configure(window); err != nil {
		return err
	}

	s.info = s.engine.Info()
	if s.info.TotalFrames < 0 && s.opts.StreamSize > s.audioStart && s.info.FrameLength > 0 {
		s.info.TotalFrames = int((s.opts.StreamSize - s.audioStart) / int64(s.info.FrameLength))
	}

	s.driver = NewDriver(c.Reader(), s.engine, s.opts.ChunkSize)
	return nil
}

func (s *Session) configure(window mpeg.Window) error {
	buf := make([]byte, s.opts.ConfigChunkSize)

	status, err := s.engine.Configure(window[:])
	for err == nil && status != Configured {
		n, rerr := s.src.Read(buf)
		if n > 0 {
			status, err = s.engine.Configure(buf[:n])
			continue
		}
		if errors.Is(rerr, io.EOF) {
			return fmt.Errorf("%w: stream ended before the decoder was configured", ErrEngineConfig)
		}
		if rerr != nil {
			return fmt.Errorf("read failed: %w", rerr)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineConfig, err)
	}
	return nil
}

// ID returns the session id
func (s *Session) ID() uuid.UUID { return s.id }

// Info returns the configured stream parameters
func (s *Session) Info() StreamInfo { return s.info }

// Header returns the first validated frame header
func (s *Session) Header() mpeg.FrameHeader { return s.header }

// AudioStart returns the stream offset of the first frame header
func (s *Session) AudioStart() int64 { return s.audioStart }

// Skipped returns the number of bytes shifted over while scanning for sync
func (s *Session) Skipped() int64 { return s.skipped }

// Units returns the number of units decoded so far
func (s *Session) Units() int64 { return s.units }

// Samples returns the number of samples per channel decoded so far
func (s *Session) Samples() int64 { return s.samples }

// Next returns the next decoded unit, or io.EOF once the stream is drained
func (s *Session) Next() (audio.Unit, error) {
	if s.closed {
		return audio.Unit{}, ErrSessionClosed
	}

	unit, err := s.driver.DecodeOneUnit()
	if err != nil {
		if errors.Is(err, io.EOF) && !s.eof {
			s.eof = true
			plog.Infof("Session %s reached end of stream after %d units (%d samples)", s.id, s.units, s.samples)
		}
		return audio.Unit{}, err
	}

	s.units++
	s.samples += int64(unit.Samples)
	return unit, nil
}

// Each calls fn for every remaining unit until the end of the stream
func (s *Session) Each(fn func(audio.Unit) error) error {
	for {
		unit, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(unit); err != nil {
			return err
		}
	}
}

// Close ends the engine session. It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.engine.Close()
}
