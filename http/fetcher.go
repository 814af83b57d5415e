// Package http provides HTTP-based implementations of metascrape.Fetcher and
// metascrape.SearchService.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/akarpinski/metascrape"
)

// DefaultFetchTimeout is the default timeout for page fetches. The batch
// full-content path uses this; the single-page scrape path extends it via
// WithTimeout.
const DefaultFetchTimeout = 10 * time.Second

// userAgent is a browser-like header; some sites refuse obvious bots.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/94.0.4606.81 Safari/537.36"

// Ensure Fetcher implements metascrape.Fetcher at compile time.
var _ metascrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs with a single GET. No retries;
// the POST→GET fallback lives only in the search-query path.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", metascrape.Errorf(metascrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "error retrieving content from %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "error retrieving content from %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "error reading content from %s: %v", url, err)
	}

	return string(body), nil
}
