package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/akarpinski/metascrape"
)

// DefaultSearchTimeout bounds a single request to the search backend.
const DefaultSearchTimeout = 10 * time.Second

// Ensure SearxNG implements metascrape.SearchService at compile time.
var _ metascrape.SearchService = (*SearxNG)(nil)

// SearxNG queries a SearxNG instance's /search endpoint. Queries go out as
// POST form submissions first; if the POST fails or returns a non-2xx
// status, the same fields are retried once as GET query parameters. Some
// instances disable one method or the other.
type SearxNG struct {
	baseURL string
	client  *http.Client
}

// SearxOption configures a SearxNG client.
type SearxOption func(*SearxNG)

// WithSearchTimeout sets the timeout for backend requests.
// Defaults to DefaultSearchTimeout (10s) if not specified.
func WithSearchTimeout(d time.Duration) SearxOption {
	return func(s *SearxNG) {
		s.client.Timeout = d
	}
}

// NewSearxNG creates a client for the SearxNG instance at baseURL.
func NewSearxNG(baseURL string, opts ...SearxOption) *SearxNG {
	s := &SearxNG{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultSearchTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs the query and returns the backend's results in order.
func (s *SearxNG) Search(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", req.Query)
	engine := req.Engine
	if engine == "" {
		engine = metascrape.DefaultEngine
	}
	form.Set("engines", engine)
	form.Set("format", "json")
	form.Set("safesearch", strconv.Itoa(req.SafeSearch))
	language := req.Language
	if language == "" {
		language = "all"
	}
	form.Set("language", language)
	if req.TimeRange != "" {
		form.Set("time_range", req.TimeRange)
	}

	resp, err := s.postThenGet(ctx, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, metascrape.Errorf(metascrape.EUNAVAILABLE, "error parsing search results: the SearxNG instance returned invalid data")
	}

	results := make([]metascrape.SearchResult, 0, len(sr.Results))
	for _, r := range sr.Results {
		results = append(results, metascrape.SearchResult{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.URL),
			Content: strings.TrimSpace(r.Content),
		})
	}
	return results, nil
}

// postThenGet submits the search form as POST, falling back to GET with the
// same fields as query parameters when the POST fails or is rejected.
func (s *SearxNG) postThenGet(ctx context.Context, form url.Values) (*http.Response, error) {
	endpoint := s.baseURL + "/search"

	post, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EINVALID, "invalid SearxNG URL %q: %v", s.baseURL, err)
	}
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(post)
	if err == nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	if err == nil {
		resp.Body.Close()
	}

	get, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+form.Encode(), nil)
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EINVALID, "invalid SearxNG URL %q: %v", s.baseURL, err)
	}

	resp, err = s.client.Do(get)
	if err != nil {
		return nil, metascrape.Errorf(metascrape.EUNAVAILABLE, "error performing search: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, metascrape.Errorf(metascrape.EUNAVAILABLE, "error performing search: SearxNG returned HTTP %d", resp.StatusCode)
	}
	return resp, nil
}

// Diagnostics reports the outcome of probing a SearxNG instance.
type Diagnostics struct {
	BaseURL        string
	RootReachable  bool
	RootError      string
	GetSearchOK    bool
	GetSearchError string
	ValidJSON      bool
	PostSearchOK   bool
	PostSearchErr  string
}

// NormalizeInstanceURL prepends https:// when the scheme is missing and
// trims trailing slashes.
func NormalizeInstanceURL(raw string) (string, error) {
	if raw == "" {
		return "", metascrape.Errorf(metascrape.EINVALID, "no URL provided")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/"), nil
}

// Diagnose probes the instance: root page reachability, a GET test search,
// whether the JSON response has the expected shape, and a POST test search.
// Probe failures are recorded in the report, not returned as errors.
func (s *SearxNG) Diagnose(ctx context.Context) *Diagnostics {
	d := &Diagnostics{BaseURL: s.baseURL}

	if resp, err := s.getURL(ctx, s.baseURL+"/"); err != nil {
		d.RootError = err.Error()
	} else {
		resp.Body.Close()
		d.RootReachable = true
	}

	if resp, err := s.getURL(ctx, s.baseURL+"/search?q=test&format=json"); err != nil {
		d.GetSearchError = err.Error()
	} else {
		d.GetSearchOK = true
		var payload map[string]json.RawMessage
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			_, d.ValidJSON = payload["results"]
		}
		resp.Body.Close()
	}

	form := url.Values{"q": {"test"}, "format": {"json"}}
	post, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", strings.NewReader(form.Encode()))
	if err == nil {
		post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if resp, err := s.client.Do(post); err != nil {
			d.PostSearchErr = err.Error()
		} else if resp.StatusCode < 200 || resp.StatusCode > 299 {
			d.PostSearchErr = "HTTP " + strconv.Itoa(resp.StatusCode)
			resp.Body.Close()
		} else {
			d.PostSearchOK = true
			resp.Body.Close()
		}
	}

	return d
}

// Validate checks that the instance behaves like SearxNG: reachable root
// and a JSON search response carrying a results key. Returns the normalized
// instance URL.
func (s *SearxNG) Validate(ctx context.Context) (string, error) {
	d := s.Diagnose(ctx)
	if !d.RootReachable {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "could not connect to SearxNG instance: %s", d.RootError)
	}
	if !d.GetSearchOK || !d.ValidJSON {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "the provided URL doesn't appear to be a SearxNG instance")
	}
	return s.baseURL, nil
}

func (s *SearxNG) getURL(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, metascrape.Errorf(metascrape.EUNAVAILABLE, "HTTP %d", resp.StatusCode)
	}
	return resp, nil
}
