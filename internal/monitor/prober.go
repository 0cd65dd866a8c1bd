package monitor

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/juststeveking/uptimed/internal/config"
)

// Prober defines the interface for checking a single target
type Prober interface {
	Probe(ctx context.Context, url string, headers []config.Header) Outcome
}

// HTTPProber checks targets with one GET request each
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with a reusable client.
// The client keeps the transport defaults: no timeout and standard redirect following.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		client: &http.Client{},
	}
}

// Close closes the HTTP client's connection pool
func (h *HTTPProber) Close() {
	if h.client != nil {
		h.client.CloseIdleConnections()
	}
}

// Probe performs exactly one GET against url
func (h *HTTPProber) Probe(ctx context.Context, url string, headers []config.Header) Outcome {
	outcome := Outcome{
		URL:       url,
		CheckedAt: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		outcome.StatusCode = FallbackStatus
		outcome.Err = err
		return outcome
	}

	// Add rather than Set so repeated names send every value, in order
	for _, header := range headers {
		req.Header.Add(header.Name, header.Value)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	outcome.ResponseTime = time.Since(start)

	if err != nil {
		outcome.StatusCode = FallbackStatus
		outcome.Err = err
		return outcome
	}
	defer resp.Body.Close()

	// Drain so the connection goes back to the pool
	_, _ = io.Copy(io.Discard, resp.Body)

	outcome.StatusCode = resp.StatusCode
	return outcome
}
