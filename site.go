package tropy

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultBaseURL is the canonical scheme and host of the source site.
const DefaultBaseURL = "http://tvtropes.org"

// Structural markers of the source site's pages.
const (
	// PageContentClass marks the element holding a page's main body.
	PageContentClass = "page-content"

	// TropeLinkClass marks in-wiki cross-reference links.
	TropeLinkClass = "twikilink"

	// TropeLinkPath is the path prefix of concept pages.
	TropeLinkPath = "/pmwiki/pmwiki.php/Main/"

	// TitleFieldID is the id of the hidden input holding a page's title.
	TitleFieldID = "title-hidden"

	// GroupFieldID is the id of the hidden input holding a page's category.
	GroupFieldID = "groupname-hidden"
)

// Site describes the site being crawled.
type Site struct {
	// BaseURL is the scheme and host every detail lookup must start with.
	BaseURL string
}

// DefaultSite returns the TV Tropes site.
func DefaultSite() Site {
	return Site{BaseURL: DefaultBaseURL}
}

// Owns reports whether rawURL lives on the site: same scheme and host as
// BaseURL, no userinfo, and a path under BaseURL's path.
func (s Site) Owns(rawURL string) bool {
	base, err := url.Parse(s.BaseURL)
	if err != nil || base.Host == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.User != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) &&
		strings.EqualFold(u.Host, base.Host) &&
		strings.HasPrefix(u.Path, strings.TrimSuffix(base.Path, "/"))
}

// Host returns the host part of BaseURL.
func (s Site) Host() string {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(s.BaseURL, "/")
	}
	return u.Host
}

// TropeLinkPattern matches hrefs pointing at the site's concept pages.
func (s Site) TropeLinkPattern() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(s.Host() + TropeLinkPath))
}

// ContentRegion returns the inner HTML of the page's main body.
func ContentRegion(doc Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	region, ok := doc.Find("div", PageContentClass)
	if !ok {
		return "", false
	}
	return region.HTML(), true
}
