// ABOUTME: WebSocket stream source
// ABOUTME: Concatenates binary messages into a byte stream until the peer closes
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"
)

type wsSource struct {
	conn *websocket.Conn
	buf  []byte
	err  error
}

func openWebSocket(ctx context.Context, url string) (io.ReadCloser, error) {
	plog.Infof("Connecting to %s", url)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	return &wsSource{conn: conn}, nil
}

// Read returns bytes of binary messages in arrival order. A normal close
// from the peer ends the stream.
func (w *wsSource) Read(p []byte) (int, error) {
	for len(w.buf) == 0 {
		if w.err != nil {
			return 0, w.err
		}

		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				plog.Debugf("WebSocket closed by peer")
				w.err = io.EOF
			} else {
				w.err = fmt.Errorf("websocket read failed: %w", err)
			}
			continue
		}

		if messageType != websocket.BinaryMessage {
			plog.Debugf("Ignoring non-binary WebSocket message (%d bytes)", len(data))
			continue
		}
		w.buf = data
	}

	n := copy(p, w.buf)
	w.buf = w.buf[n:]
	return n, nil
}

func (w *wsSource) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		plog.Debugf("Failed to send close message: %v", err)
	}
	return w.conn.Close()
}
