// ABOUTME: Source dispatch by location scheme
// ABOUTME: Picks the file, HTTP or WebSocket opener and reports stream sizes
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnsupportedScheme is returned for URL schemes no source handles
var ErrUnsupportedScheme = errors.New("source: unsupported scheme")

// Sized is implemented by sources that know their total length
type Sized interface {
	Size() int64
}

// Open opens location for reading. The context bounds connection setup for
// network sources.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	scheme := ""
	if i := strings.Index(location, "://"); i > 0 {
		scheme = strings.ToLower(location[:i])
	}

	switch scheme {
	case "":
		return openFile(location)
	case "file":
		return openFile(strings.TrimPrefix(location[len(scheme):], "://"))
	case "http", "https":
		return openHTTP(ctx, location)
	case "ws", "wss":
		return openWebSocket(ctx, location)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// Size returns the length of r if known, or -1
func Size(r io.Reader) int64 {
	if s, ok := r.(Sized); ok {
		return s.Size()
	}
	return -1
}

type fileSource struct {
	*os.File
	size int64
}

func (f *fileSource) Size() int64 { return f.size }

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("failed to open file: %s is a directory", path)
	}

	plog.Debugf("Opened file %s (%d bytes)", path, st.Size())
	return &fileSource{File: f, size: st.Size()}, nil
}
