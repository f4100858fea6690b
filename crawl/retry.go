package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tropy"
)

// RetryDelays returns n exponential backoff delays starting at one second.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	for i := range n {
		delays = append(delays, time.Second<<i)
	}
	return delays
}

var _ tropy.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries connection failures of the wrapped fetcher with a
// fixed backoff schedule. Other errors, EMISSING included, are returned
// after the first attempt.
type RetryFetcher struct {
	Fetcher tropy.Fetcher
	Delays  []time.Duration
	Logger  *slog.Logger
}

// NewRetryFetcher wraps fetcher with the given delays, one retry per delay.
func NewRetryFetcher(fetcher tropy.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{Fetcher: fetcher, Delays: delays, Logger: logger}
}

// Fetch attempts the fetch up to len(Delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	logger := loggerOrDiscard(f.Logger)
	maxAttempts := len(f.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if tropy.ErrorCode(err) != tropy.ECONNECTION || attempt >= maxAttempts-1 {
			break
		}

		logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", describe(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.Fetcher.Close()
}
