package trafilatura

import (
	"bytes"
	"strings"

	"github.com/akarpinski/metascrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements metascrape.Extractor at compile time.
var _ metascrape.Extractor = (*Extractor)(nil)

// Extractor is an alternative to the heuristic pipeline: it wraps
// go-trafilatura for content detection and renders the result with the
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(doc.Body), opts)
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EINTERNAL, "trafilatura extraction for %s: %v", doc.URL, err)
	}

	var markdown string
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		markdown, err = e.converter.Convert(contentHTML)
		if err != nil {
			return nil, err
		}
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = metascrape.NoTitle
	}

	return &metascrape.ExtractResult{Title: title, Markdown: markdown}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
