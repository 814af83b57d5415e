package readability

import (
	"net/url"
	"strings"

	"github.com/akarpinski/metascrape"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements metascrape.Extractor at compile time.
var _ metascrape.Extractor = (*Extractor)(nil)

// Extractor is an alternative to the heuristic pipeline: it wraps
// go-readability for content detection and renders the result with the
// given converter.
type Extractor struct {
	converter metascrape.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor(conv metascrape.Converter) *Extractor {
	return &Extractor{converter: conv}
}

// Extract processes the document and returns its main content as markdown.
func (e *Extractor) Extract(doc metascrape.Document) (*metascrape.ExtractResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	pageURL, err := url.Parse(doc.URL)
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EINVALID, "invalid URL %q: %v", doc.URL, err)
	}

	article, err := readability.FromReader(strings.NewReader(doc.Body), pageURL)
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EINTERNAL, "readability extraction for %s: %v", doc.URL, err)
	}

	markdown, err := e.converter.Convert(article.Content)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = metascrape.NoTitle
	}

	return &metascrape.ExtractResult{Title: title, Markdown: markdown}, nil
}
