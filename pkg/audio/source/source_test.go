// ABOUTME: Tests for stream sources
// ABOUTME: Uses temp files and httptest servers for HTTP and WebSocket streams
package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.mp3")
	data := []byte("ID3 and some frames")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	for _, location := range []string{path, "file://" + path} {
		rc, err := Open(context.Background(), location)
		if err != nil {
			t.Fatalf("failed to open %s: %v", location, err)
		}

		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("expected %q, got %q", data, got)
		}
		if Size(rc) != int64(len(data)) {
			t.Errorf("expected size %d, got %d", len(data), Size(rc))
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestOpen_Directory(t *testing.T) {
	if _, err := Open(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error opening a directory")
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), "ftp://example.com/stream.mp3")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestOpen_HTTP(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stream.mp3" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	rc, err := Open(context.Background(), srv.URL+"/stream.mp3")
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected %d bytes, got %d", len(data), len(got))
	}
	if Size(rc) != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), Size(rc))
	}

	if _, err := Open(context.Background(), srv.URL+"/missing.mp3"); err == nil {
		t.Error("expected error for HTTP 404")
	}
}

func TestOpen_HTTPCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Open(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpen_WebSocket(t *testing.T) {
	messages := [][]byte{{1, 2, 3}, {4, 5}, {6, 7, 8, 9}}
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteMessage(websocket.BinaryMessage, messages[0])
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"metadata"}`))
		conn.WriteMessage(websocket.BinaryMessage, messages[1])
		conn.WriteMessage(websocket.BinaryMessage, messages[2])
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

		// Wait for the close reply
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	rc, err := Open(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	want := bytes.Join(messages, nil)
	if !bytes.Equal(got, want) {
		t.Errorf("expected % x, got % x", want, got)
	}
	if Size(rc) != -1 {
		t.Errorf("expected unknown size, got %d", Size(rc))
	}
}

func TestOpen_WebSocketAbnormalClose(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2})
		conn.Close()
	}))
	defer srv.Close()

	rc, err := Open(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer rc.Close()

	_, err = io.ReadAll(rc)
	if err == nil {
		t.Error("expected error when the connection drops without a close frame")
	}
}
