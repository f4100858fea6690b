package crawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/tropy"
)

// Resolver runs the fetch, parse and extract steps shared by every way of
// reading a page. The Strategy decides what is read; Resolver decides how
// the page gets there.
type Resolver[T any] struct {
	Fetcher  tropy.Fetcher
	Parser   tropy.Parser
	Strategy tropy.Strategy[T]
	Logger   *slog.Logger
}

// Resolve fetches url, parses it and hands the document to the strategy.
// An empty url returns the zero result without fetching, whatever the
// strategy. Errors are returned as is; deciding which of them to tolerate is
// up to the caller. A missing strategy is reported as ENOTIMPLEMENTED before
// anything is fetched, and a panic inside the strategy is reported as EPARSE.
func (r *Resolver[T]) Resolve(ctx context.Context, url string) (result T, err error) {
	logger := loggerOrDiscard(r.Logger)

	if url == "" {
		logger.Debug("empty url, nothing to resolve")
		return result, nil
	}
	if r.Strategy == nil {
		return result, tropy.Errorf(tropy.ENOTIMPLEMENTED, "no extraction strategy configured")
	}

	html, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return result, err
	}

	doc, err := r.Parser.Parse(url, html)
	if err != nil {
		return result, err
	}

	return extract(r.Strategy, doc)
}

// extract runs the strategy, turning an unexpected panic into EPARSE.
func extract[T any](s tropy.Strategy[T], doc tropy.Document) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = tropy.Errorf(tropy.EPARSE, "error parsing page %s: %v", doc.URL(), r)
		}
	}()
	return s.Extract(doc)
}

// UnimplementedStrategy is a strategy with no extraction step. Resolving
// with it always fails with ENOTIMPLEMENTED, which no top-level operation
// tolerates.
type UnimplementedStrategy[T any] struct{}

// Extract always returns ENOTIMPLEMENTED.
func (UnimplementedStrategy[T]) Extract(doc tropy.Document) (T, error) {
	var zero T
	return zero, tropy.Errorf(tropy.ENOTIMPLEMENTED, "extraction strategy %T not implemented", zero)
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

func describe(err error) string {
	return fmt.Sprintf("%s: %s", tropy.ErrorCode(err), tropy.ErrorMessage(err))
}
