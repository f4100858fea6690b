package tropy

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET and returns the response body verbatim.
	// An empty url is a no-op that returns an empty string.
	// Returns ECONNECTION for transport failures and non-OK statuses, and
	// EMISSING when the server answers OK with an empty body.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// HostLimiter paces requests to the same site.
type HostLimiter interface {
	// Wait blocks until a request to rawURL's host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, rawURL string) error
}
