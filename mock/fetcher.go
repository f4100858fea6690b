package mock

import (
	"context"

	"github.com/fwojciec/tropy"
)

var _ tropy.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tropy.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ tropy.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of tropy.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, rawURL string) error
}

func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	return l.WaitFn(ctx, rawURL)
}
