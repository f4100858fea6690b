package crawl

import (
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/tropy"
)

// Ensure ListStrategy implements tropy.Strategy at compile time.
var _ tropy.Strategy[[]*tropy.Trope] = (*ListStrategy)(nil)

// ListStrategy reads trope references from the cross-reference links inside
// a page's content region.
type ListStrategy struct {
	pattern *regexp.Regexp
	logger  *slog.Logger
}

// NewListStrategy creates a ListStrategy for the given site.
func NewListStrategy(site tropy.Site, logger *slog.Logger) *ListStrategy {
	return &ListStrategy{
		pattern: site.TropeLinkPattern(),
		logger:  loggerOrDiscard(logger),
	}
}

// Extract returns one reference trope per cross-reference link in the page's
// content region. A blank document yields an empty list; a document without
// a content region is EPARSE. Links that cannot be turned into a trope are
// logged and skipped.
func (s *ListStrategy) Extract(doc tropy.Document) ([]*tropy.Trope, error) {
	tropes := []*tropy.Trope{}
	if doc == nil || strings.TrimSpace(doc.Source()) == "" {
		return tropes, nil
	}

	region, ok := doc.Find("div", tropy.PageContentClass)
	if !ok {
		return nil, tropy.Errorf(tropy.EPARSE, "no %s region in page %s", tropy.PageContentClass, doc.URL())
	}

	for _, link := range region.FindAll("a", tropy.TropeLinkClass, "href", s.pattern) {
		trope, err := referenceFromLink(link)
		if err != nil {
			s.logger.Warn("skipping trope link", "page", doc.URL(), "err", describe(err))
			continue
		}
		tropes = append(tropes, trope)
	}

	return tropes, nil
}

func referenceFromLink(link tropy.Node) (*tropy.Trope, error) {
	href, _ := link.Attr("href")
	u, err := url.Parse(href)
	if err != nil {
		return nil, tropy.Errorf(tropy.EPARSE, "invalid trope link %q: %v", href, err)
	}

	id := path.Base(u.Path)
	if id == "" || id == "." || id == "/" || strings.HasSuffix(u.Path, "/") {
		return nil, tropy.Errorf(tropy.EPARSE, "trope link %q has no trailing segment", href)
	}

	return &tropy.Trope{
		ID:   id,
		Name: strings.TrimSpace(link.Text()),
		URL:  href,
	}, nil
}
