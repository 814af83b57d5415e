package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akarpinski/metascrape"
	mshttp "github.com/akarpinski/metascrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searxPayload = `{"results": [
	{"title": "Go", "url": "https://go.dev", "content": " the Go programming language "},
	{"title": "Go wiki", "url": "https://en.wikipedia.org/wiki/Go", "content": "encyclopedia entry"}
]}`

func TestSearxNG_Search(t *testing.T) {
	t.Parallel()

	t.Run("submits the query as a POST form", func(t *testing.T) {
		t.Parallel()

		var gotMethod, gotQuery, gotEngines, gotFormat, gotLanguage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotMethod = r.Method
			gotQuery = r.Form.Get("q")
			gotEngines = r.Form.Get("engines")
			gotFormat = r.Form.Get("format")
			gotLanguage = r.Form.Get("language")
			_, _ = w.Write([]byte(searxPayload))
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		results, err := s.Search(context.Background(), metascrape.SearchRequest{Query: "golang"})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "golang", gotQuery)
		assert.Equal(t, metascrape.DefaultEngine, gotEngines)
		assert.Equal(t, "json", gotFormat)
		assert.Equal(t, "all", gotLanguage)

		require.Len(t, results, 2)
		assert.Equal(t, "Go", results[0].Title)
		assert.Equal(t, "https://go.dev", results[0].URL)
		assert.Equal(t, "the Go programming language", results[0].Content)
	})

	t.Run("falls back to GET when POST is rejected", func(t *testing.T) {
		t.Parallel()

		var methods []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			assert.Equal(t, "golang", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(searxPayload))
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		results, err := s.Search(context.Background(), metascrape.SearchRequest{Query: "golang"})
		require.NoError(t, err)

		assert.Equal(t, []string{http.MethodPost, http.MethodGet}, methods)
		assert.Len(t, results, 2)
	})

	t.Run("rejected GET after rejected POST is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		_, err := s.Search(context.Background(), metascrape.SearchRequest{Query: "golang"})
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
		assert.Contains(t, metascrape.ErrorMessage(err), "HTTP 403")
	})

	t.Run("malformed JSON is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		_, err := s.Search(context.Background(), metascrape.SearchRequest{Query: "golang"})
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
	})

	t.Run("empty query is invalid without touching the backend", func(t *testing.T) {
		t.Parallel()

		var called bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		_, err := s.Search(context.Background(), metascrape.SearchRequest{})
		assert.Equal(t, metascrape.EINVALID, metascrape.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("optional fields pass through", func(t *testing.T) {
		t.Parallel()

		var gotTimeRange, gotSafeSearch, gotLanguage string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotTimeRange = r.Form.Get("time_range")
			gotSafeSearch = r.Form.Get("safesearch")
			gotLanguage = r.Form.Get("language")
			_, _ = w.Write([]byte(`{"results": []}`))
		}))
		defer srv.Close()

		s := mshttp.NewSearxNG(srv.URL)
		_, err := s.Search(context.Background(), metascrape.SearchRequest{
			Query:      "golang",
			TimeRange:  "month",
			Language:   "de",
			SafeSearch: metascrape.SafeSearchStrict,
		})
		require.NoError(t, err)

		assert.Equal(t, "month", gotTimeRange)
		assert.Equal(t, "2", gotSafeSearch)
		assert.Equal(t, "de", gotLanguage)
	})
}

func TestNormalizeInstanceURL(t *testing.T) {
	t.Parallel()

	t.Run("prepends https and trims trailing slashes", func(t *testing.T) {
		t.Parallel()

		got, err := mshttp.NormalizeInstanceURL("searx.example.org/")
		require.NoError(t, err)
		assert.Equal(t, "https://searx.example.org", got)
	})

	t.Run("keeps an explicit http scheme", func(t *testing.T) {
		t.Parallel()

		got, err := mshttp.NormalizeInstanceURL("http://localhost:8888")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8888", got)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := mshttp.NormalizeInstanceURL("")
		assert.Equal(t, metascrape.EINVALID, metascrape.ErrorCode(err))
	})
}

func TestSearxNG_Diagnose(t *testing.T) {
	t.Parallel()

	t.Run("healthy instance passes all probes", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				_, _ = w.Write([]byte("<html>searxng</html>"))
				return
			}
			_, _ = w.Write([]byte(`{"results": []}`))
		}))
		defer srv.Close()

		d := mshttp.NewSearxNG(srv.URL).Diagnose(context.Background())
		assert.True(t, d.RootReachable)
		assert.True(t, d.GetSearchOK)
		assert.True(t, d.ValidJSON)
		assert.True(t, d.PostSearchOK)
	})

	t.Run("records probe failures instead of returning errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				return
			}
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		d := mshttp.NewSearxNG(srv.URL).Diagnose(context.Background())
		assert.True(t, d.RootReachable)
		assert.False(t, d.GetSearchOK)
		assert.Contains(t, d.GetSearchError, "403")
		assert.False(t, d.PostSearchOK)
	})
}

func TestSearxNG_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts an instance that returns a results key", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				return
			}
			_, _ = w.Write([]byte(`{"results": []}`))
		}))
		defer srv.Close()

		got, err := mshttp.NewSearxNG(srv.URL).Validate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, srv.URL, got)
	})

	t.Run("rejects a reachable site that is not SearxNG", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>just a website</html>"))
		}))
		defer srv.Close()

		_, err := mshttp.NewSearxNG(srv.URL).Validate(context.Background())
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
		assert.Contains(t, metascrape.ErrorMessage(err), "doesn't appear to be a SearxNG instance")
	})
}
