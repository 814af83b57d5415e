package mock

import "github.com/akarpinski/metascrape"

var _ metascrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of metascrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
