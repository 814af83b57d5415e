package metascrape

import (
	"fmt"
	"strings"
)

// FormatSummary formats search results as a markdown summary: numbered
// title, URL and snippet per result, capped at max results. A max of zero or
// less falls back to MaxResults.
func FormatSummary(results []SearchResult, max int) string {
	if len(results) == 0 {
		return "No results found for your query."
	}
	if max <= 0 {
		max = MaxResults
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n\n", len(results))

	for i, result := range results {
		if i >= max {
			break
		}
		title := result.Title
		if title == "" {
			title = NoTitle
		}
		content := result.Content
		if content == "" {
			content = "No description available."
		}
		fmt.Fprintf(&b, "## %d. %s\n", i+1, title)
		fmt.Fprintf(&b, "URL: %s\n", result.URL)
		fmt.Fprintf(&b, "%s\n\n", content)
	}

	return b.String()
}
