package mock

import "github.com/fwojciec/tropy"

var _ tropy.Converter = (*Converter)(nil)

// Converter is a mock implementation of tropy.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
