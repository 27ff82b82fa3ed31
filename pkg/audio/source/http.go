// ABOUTME: HTTP stream source
// ABOUTME: Streams a response body from a GET request
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type httpSource struct {
	io.ReadCloser
	size int64
}

func (h *httpSource) Size() int64 { return h.size }

func openHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	plog.Infof("Fetching %s", url)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream fetch failed: HTTP %d", resp.StatusCode)
	}

	return &httpSource{ReadCloser: resp.Body, size: resp.ContentLength}, nil
}
