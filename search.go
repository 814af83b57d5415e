package metascrape

import "context"

// Engines available on the default SearxNG configuration.
var Engines = []string{
	"google",
	"bing",
	"brave",
	"duckduckgo",
	"yahoo",
	"qwant",
	"startpage",
}

// DefaultEngine is used when the caller does not pick one.
const DefaultEngine = "google"

// Result count bounds for search output.
const (
	MaxResults     = 10
	DefaultResults = 5
)

// SafeSearch levels accepted by the search backend.
const (
	SafeSearchOff      = 0
	SafeSearchModerate = 1
	SafeSearchStrict   = 2
)

// SearchRequest describes a query against the search backend.
type SearchRequest struct {
	Query      string
	Engine     string
	Language   string // "all" or an ISO language code
	TimeRange  string // "", "day", "week", "month" or "year"
	SafeSearch int    // SafeSearchOff, SafeSearchModerate or SafeSearchStrict
}

// Validate returns an error if the request contains invalid fields.
func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "search query required")
	}
	return nil
}

// SearchResult is a single result returned by the search backend. Content
// holds the backend's snippet; the full-content operations replace it with
// extracted page text.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchService queries the metasearch backend.
type SearchService interface {
	// Search runs the query and returns the backend's results in order.
	// Backend failures return an EUNAVAILABLE error.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
}
