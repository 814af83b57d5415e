package metascrape

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET for the URL and returns the response body.
	// The context controls timeout and cancellation. Non-2xx responses and
	// transport failures return an EUNAVAILABLE error; there are no retries
	// at this layer.
	Fetch(ctx context.Context, url string) (html string, err error)
}
