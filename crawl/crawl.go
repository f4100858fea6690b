// Package crawl provides trope extraction and crawl orchestration.
// It shares one fetch, parse and extract flow between list pages and
// detail pages, and drives incremental crawls against the trope cache.
package crawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/tropy"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Crawler discovers tropes from seed pages and resolves the ones the cache
// still lacks content for.
type Crawler struct {
	Extractor   tropy.TropeExtractor
	Tropes      tropy.TropeService
	RateLimiter tropy.HostLimiter
	Logger      *slog.Logger

	// Concurrency bounds parallel detail fetches in Resolve. Defaults to 10.
	Concurrency int

	// MaxDepth is how many levels of linked trope pages Discover follows
	// beyond the seeds. Zero visits the seeds only.
	MaxDepth int

	// MaxPages caps the pages Discover visits. Zero means no cap.
	MaxPages int
}

// Result holds the outcome of a crawl operation.
type Result struct {
	RunID    string
	Pages    int
	Tropes   int
	Resolved int
	Failed   int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Count     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Frontier sizing for Discover.
const (
	frontierExpectedURLs      = 100000
	frontierFalsePositiveRate = 0.001
)

// Discover visits the seed pages, and up to MaxDepth levels of the trope
// pages they link to, storing a reference for every trope found. Each page
// is visited at most once per run; every reference found is offered to the
// store, which keeps the first copy it sees.
func (c *Crawler) Discover(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := loggerOrDiscard(c.Logger).With("run", result.RunID)
	notify := progressOrNop(progress)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, seed := range seeds {
		frontier.Push(Link{URL: seed})
	}

	notify(ProgressEvent{Type: ProgressStarted, Total: frontier.Len()})

	for {
		if c.MaxPages > 0 && result.Pages >= c.MaxPages {
			logger.Info("page limit reached", "pages", result.Pages)
			break
		}
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if c.RateLimiter != nil {
			if err := c.RateLimiter.Wait(ctx, link.URL); err != nil {
				result.Failed++
				notify(ProgressEvent{Type: ProgressFailed, Completed: result.Pages, Total: result.Pages + frontier.Len(), URL: link.URL, Error: err})
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				continue
			}
		}

		result.Pages++
		tropes, err := c.Extractor.ListTropes(ctx, link.URL)
		if err != nil {
			return result, fmt.Errorf("list tropes from %s: %w", link.URL, err)
		}

		stored := 0
		for _, trope := range tropes {
			if err := c.Tropes.CreateTrope(ctx, trope); err != nil {
				result.Failed++
				logger.Error("failed to store trope", "url", trope.URL, "err", err)
				continue
			}
			stored++
			if link.Depth < c.MaxDepth {
				frontier.Push(Link{URL: trope.URL, Depth: link.Depth + 1})
			}
		}
		result.Tropes += stored

		notify(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: result.Pages,
			Total:     result.Pages + frontier.Len(),
			URL:       link.URL,
			Count:     stored,
		})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: result.Pages, Total: result.Pages})
	logger.Info("discovery finished", "pages", result.Pages, "tropes", result.Tropes, "failed", result.Failed, "queued", frontier.SeenCount())
	return result, nil
}

// resolveResult holds the outcome of fetching a single trope page.
type resolveResult struct {
	url   string
	trope *tropy.Trope
	err   error
}

// Resolve fetches the page of every stored trope that still lacks content.
// Fetches run in parallel up to Concurrency; store writes happen on the
// calling goroutine only, one at a time.
func (c *Crawler) Resolve(ctx context.Context, progress ProgressFunc) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := loggerOrDiscard(c.Logger).With("run", result.RunID)
	notify := progressOrNop(progress)

	urls, err := c.Tropes.FindURLsMissingContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unresolved tropes: %w", err)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(urls)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan resolveResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, url := range urls {
			g.Go(func() error {
				resultCh <- c.resolveURL(gctx, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	for r := range resultCh {
		completed++
		result.Pages++

		if r.err == nil && r.trope.IsZero() {
			r.err = tropy.Errorf(tropy.EMISSING, "no trope found at %s", r.url)
		}
		if r.err == nil {
			r.err = c.Tropes.ResolveTrope(ctx, r.trope)
		}

		if r.err != nil {
			result.Failed++
			logger.Warn("failed to resolve trope", "url", r.url, "err", r.err)
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.url, Error: r.err})
			continue
		}

		result.Resolved++
		notify(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.url, Count: 1})
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	logger.Info("resolution finished", "resolved", result.Resolved, "failed", result.Failed)
	return result, ctx.Err()
}

// resolveURL fetches and extracts a single trope page.
func (c *Crawler) resolveURL(ctx context.Context, url string) resolveResult {
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, url); err != nil {
			return resolveResult{url: url, err: err}
		}
	}
	trope, err := c.Extractor.FetchTrope(ctx, url)
	return resolveResult{url: url, trope: trope, err: err}
}

func progressOrNop(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(ProgressEvent) {}
	}
	return progress
}
