package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/tropy"
)

// Ensure Extractor implements tropy.TropeExtractor at compile time.
var _ tropy.TropeExtractor = (*Extractor)(nil)

// Extractor exposes list and detail extraction over one fetcher and parser.
type Extractor struct {
	site   tropy.Site
	list   *Resolver[[]*tropy.Trope]
	detail *Resolver[*tropy.Trope]
	logger *slog.Logger
}

// NewExtractor creates an Extractor for site.
func NewExtractor(site tropy.Site, fetcher tropy.Fetcher, parser tropy.Parser, logger *slog.Logger) *Extractor {
	logger = loggerOrDiscard(logger)
	return &Extractor{
		site: site,
		list: &Resolver[[]*tropy.Trope]{
			Fetcher:  fetcher,
			Parser:   parser,
			Strategy: NewListStrategy(site, logger),
			Logger:   logger,
		},
		detail: &Resolver[*tropy.Trope]{
			Fetcher:  fetcher,
			Parser:   parser,
			Strategy: NewDetailStrategy(),
			Logger:   logger,
		},
		logger: logger,
	}
}

// ListTropes returns references to the tropes linked from the page at url.
// Connection, missing-content and parsing failures are logged and yield an
// empty list.
func (e *Extractor) ListTropes(ctx context.Context, url string) ([]*tropy.Trope, error) {
	e.logger.Info("attempting to get tropes", "url", url)

	tropes, err := e.list.Resolve(ctx, url)
	switch tropy.ErrorCode(err) {
	case "":
	case tropy.ECONNECTION, tropy.EMISSING, tropy.EPARSE:
		e.logger.Error("failed to get tropes", "url", url, "err", describe(err))
		return []*tropy.Trope{}, nil
	default:
		return nil, err
	}

	if tropes == nil {
		tropes = []*tropy.Trope{}
	}
	return tropes, nil
}

// FetchTrope resolves the trope whose page lives at url. A url outside the
// site is EINVALID and nothing is fetched. A page without a title is logged
// and yields the default empty trope. Every other failure is returned.
func (e *Extractor) FetchTrope(ctx context.Context, url string) (*tropy.Trope, error) {
	if !e.site.Owns(url) {
		return nil, tropy.Errorf(tropy.EINVALID, "url %q is not on %s", url, e.site.BaseURL)
	}

	trope, err := e.detail.Resolve(ctx, url)
	if tropy.ErrorCode(err) == tropy.EMISSING {
		e.logger.Error("failed to resolve trope", "url", url, "err", describe(err))
		return &tropy.Trope{}, nil
	} else if err != nil {
		return nil, err
	}

	return trope, nil
}
