// Package rod fetches pages through a headless Chrome browser.
package rod

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/tropy"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements tropy.Fetcher at compile time.
var _ tropy.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// The browser is recycled periodically, see BrowserManager.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	managerOpts []ManagerOption
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each page load.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRecycleAfter recycles the browser after n pages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, WithMaxPages(n))
	}
}

// NewFetcher creates a Fetcher backed by a freshly launched headless browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML. An empty url
// returns an empty page without navigating. Navigation failures and
// timeouts are ECONNECTION; a page that renders to nothing is EMISSING.
// Unlike the HTTP fetcher, error statuses are not detected: the browser
// renders the error page like any other.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	if browser == nil {
		return "", tropy.Errorf(tropy.ECONNECTION, "browser closed, cannot fetch url:%s", url)
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", tropy.Errorf(tropy.ECONNECTION, "opening page for url:%s: %v", url, err)
	}
	defer page.Close()

	loadCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(loadCtx)

	if err := page.Navigate(url); err != nil {
		return "", f.loadError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", f.loadError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.loadError(ctx, url, err)
	}
	f.manager.IncrementPageCount()

	if strings.TrimSpace(html) == "" {
		return "", tropy.Errorf(tropy.EMISSING, "received no html for url:%s", url)
	}
	return html, nil
}

func (f *Fetcher) loadError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return tropy.Errorf(tropy.ECONNECTION, "loading url:%s: %v", url, err)
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
