package metascrape

// Document is a fetched webpage: the raw HTML plus the URL it came from.
// Immutable once fetched; extraction always reparses from Body rather than
// mutating a shared tree.
type Document struct {
	URL  string
	Body string
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Body == "" {
		return Errorf(EINVALID, "document body required")
	}
	return nil
}

// NoTitle is the sentinel title used when a page has no <title> element.
const NoTitle = "No title"

// ExtractResult holds the extracted main content of a page.
type ExtractResult struct {
	// Title is the page title, or NoTitle when the page has none.
	Title string

	// Markdown is the main content rendered as markdown. Extraction never
	// fails for lack of content; this may be arbitrarily short.
	Markdown string
}

// Extractor reduces a fetched page to its main content as markdown,
// removing boilerplate (nav, footers, ads, scripts).
type Extractor interface {
	Extract(doc Document) (*ExtractResult, error)
}
