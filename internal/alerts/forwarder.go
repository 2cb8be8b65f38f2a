package alerts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Doer performs HTTP requests. Satisfied by *http.Client; tests substitute
// a double to inspect forwarded payloads.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Forwarder delivers enriched alert payloads to an Alertmanager endpoint.
type Forwarder struct {
	url        string
	httpClient Doer
}

// NewForwarder creates a Forwarder targeting the given URL.
func NewForwarder(url string, httpClient Doer) *Forwarder {
	return &Forwarder{
		url:        url,
		httpClient: httpClient,
	}
}

// Forward posts the payload and returns the upstream status code.
// Delivery is best effort: one attempt, no retries, and the response body
// is discarded.
func (f *Forwarder) Forward(ctx context.Context, payload []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "gistrelay/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("alertmanager unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// NewHTTPClient creates an HTTP client configured for alert forwarding.
// Deliveries are short-lived fire-and-forget posts, so the transport is
// kept leaner than the GitHub one.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
