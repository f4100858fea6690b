package tropy

import "context"

// Trope represents one concept page on the source site.
//
// A trope starts out as a reference discovered on another page's list of
// links (Content empty) and becomes resolved once its own page has been
// fetched (Content holds the page's raw HTML).
type Trope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// IsZero reports whether t is the default empty trope.
func (t *Trope) IsZero() bool {
	return t == nil || *t == Trope{}
}

// IsResolved reports whether the trope's own page content has been fetched.
func (t *Trope) IsResolved() bool {
	return t != nil && t.Content != ""
}

// Validate returns an error if the trope cannot be stored.
func (t *Trope) Validate() error {
	if t.ID == "" {
		return Errorf(EINVALID, "trope ID required")
	}
	if t.URL == "" {
		return Errorf(EINVALID, "trope URL required")
	}
	return nil
}

// TropeService represents the persistent trope cache.
type TropeService interface {
	// CreateTrope stores a new trope. Storing a trope whose ID or URL is
	// already known is a no-op, not an error: the first write wins.
	CreateTrope(ctx context.Context, trope *Trope) error

	// FindTropeByURL retrieves a trope by URL.
	// Returns the default empty trope (and no error) if none matches.
	FindTropeByURL(ctx context.Context, url string) (*Trope, error)

	// FindTropeIDs returns the IDs of every stored trope, in no particular order.
	FindTropeIDs(ctx context.Context) ([]string, error)

	// FindURLsMissingContent returns the URL of every stored trope whose
	// content is still empty.
	FindURLsMissingContent(ctx context.Context) ([]string, error)

	// ResolveTrope records the result of a detail fetch. An unresolved row
	// for trope.URL is filled in once; an already resolved row is left as is.
	// Returns ECONFLICT if the resolved ID belongs to another trope.
	ResolveTrope(ctx context.Context, trope *Trope) error

	// FindTropes retrieves tropes matching the filter, ordered by ID.
	FindTropes(ctx context.Context, filter TropeFilter) ([]*Trope, error)
}

// TropeFilter represents a filter for FindTropes.
type TropeFilter struct {
	Type     *string `json:"type"`
	Resolved *bool   `json:"resolved"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TropeExtractor turns site pages into tropes.
type TropeExtractor interface {
	// ListTropes returns references to the tropes linked from the page at url.
	// Network, missing-content and page-structure failures yield an empty
	// list rather than an error.
	ListTropes(ctx context.Context, url string) ([]*Trope, error)

	// FetchTrope resolves the trope whose page lives at url.
	// Returns EINVALID for a url outside the site. A page without the
	// trope's title yields the default empty trope.
	FetchTrope(ctx context.Context, url string) (*Trope, error)
}

// TropeWriter exports resolved tropes.
type TropeWriter interface {
	WriteTrope(ctx context.Context, trope *Trope) error
}
