package mock

import "github.com/fwojciec/tropy"

// Strategy is a mock implementation of tropy.Strategy.
type Strategy[T any] struct {
	ExtractFn func(doc tropy.Document) (T, error)
}

func (s *Strategy[T]) Extract(doc tropy.Document) (T, error) {
	return s.ExtractFn(doc)
}

var _ tropy.Parser = (*Parser)(nil)

// Parser is a mock implementation of tropy.Parser.
type Parser struct {
	ParseFn func(url, html string) (tropy.Document, error)
}

func (p *Parser) Parse(url, html string) (tropy.Document, error) {
	return p.ParseFn(url, html)
}
