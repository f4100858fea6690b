package tropy

// Strategy is one way of reading a parsed page: a list of trope references
// from a list page, or a single resolved trope from a detail page.
type Strategy[T any] interface {
	Extract(doc Document) (T, error)
}
