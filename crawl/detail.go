package crawl

import (
	"github.com/fwojciec/tropy"
)

// Ensure DetailStrategy implements tropy.Strategy at compile time.
var _ tropy.Strategy[*tropy.Trope] = (*DetailStrategy)(nil)

// DetailStrategy resolves a single trope from its own page.
type DetailStrategy struct{}

// NewDetailStrategy creates a DetailStrategy.
func NewDetailStrategy() *DetailStrategy {
	return &DetailStrategy{}
}

// Extract reads the page's hidden title and group fields. The trope's URL
// and content come from the document itself. A page without a title is
// EMISSING. Name is left empty: only list pages know a trope's display name.
func (s *DetailStrategy) Extract(doc tropy.Document) (*tropy.Trope, error) {
	id, ok := hiddenValue(doc, tropy.TitleFieldID)
	if !ok {
		return nil, tropy.Errorf(tropy.EMISSING, "no %s field in page %s", tropy.TitleFieldID, doc.URL())
	}

	trope := &tropy.Trope{
		ID:      id,
		URL:     doc.URL(),
		Content: doc.Source(),
	}
	if group, ok := hiddenValue(doc, tropy.GroupFieldID); ok {
		trope.Type = group
	}

	return trope, nil
}

func hiddenValue(doc tropy.Document, id string) (string, bool) {
	input, ok := doc.FindByID("input", id)
	if !ok {
		return "", false
	}
	value, ok := input.Attr("value")
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
