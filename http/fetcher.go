// Package http provides an HTTP-based implementation of tropy.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/tropy"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements tropy.Fetcher at compile time.
var _ tropy.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs with a single GET per call.
// It never retries; wrap it with crawl.RetryFetcher for that.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient replaces the underlying HTTP client. The client's own timeout
// is kept as is.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", tropy.Errorf(tropy.ECONNECTION, "invalid request for url:%s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", tropy.Errorf(tropy.ECONNECTION, "request failed for url:%s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", tropy.Errorf(tropy.ECONNECTION, "received code:%d for url:%s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", tropy.Errorf(tropy.ECONNECTION, "reading body for url:%s: %v", url, err)
	}

	if len(body) == 0 {
		return "", tropy.Errorf(tropy.EMISSING, "received no html for url:%s", url)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
