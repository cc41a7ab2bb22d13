package mock

import "github.com/fwojciec/commpost"

var _ commpost.Converter = (*Converter)(nil)

// Converter is a mock implementation of commpost.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
