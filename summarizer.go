package metascrape

import "context"

// Summarizer produces a condensed version of extracted page content using an
// LLM completion API.
type Summarizer interface {
	// Summarize returns a summary of text. Title and url give the model
	// source context and are embedded in the prompt. Upstream failures
	// return an EUNAVAILABLE error.
	Summarize(ctx context.Context, text, title, url string) (string, error)
}
