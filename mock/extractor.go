package mock

import "github.com/akarpinski/metascrape"

var _ metascrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of metascrape.Extractor.
type Extractor struct {
	ExtractFn func(doc metascrape.Document) (*metascrape.ExtractResult, error)
}

func (e *Extractor) Extract(doc metascrape.Document) (*metascrape.ExtractResult, error) {
	return e.ExtractFn(doc)
}
