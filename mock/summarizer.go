package mock

import (
	"context"

	"github.com/akarpinski/metascrape"
)

var _ metascrape.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of metascrape.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text, title, url string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text, title, url string) (string, error) {
	return s.SummarizeFn(ctx, text, title, url)
}
