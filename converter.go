package metascrape

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. Links are preserved as
	// markdown links and output is not wrapped to a line width. Whether
	// images and tables are rendered is fixed by the implementation's
	// configuration, not per call.
	Convert(html string) (string, error)
}
