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

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the response body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		f := mshttp.NewFetcher()
		body, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", body)
	})

	t.Run("sends a browser-like user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := mshttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, ua, "Mozilla/5.0")
		assert.Contains(t, ua, "Chrome")
	})

	t.Run("non-2xx status is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		f := mshttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
		assert.Contains(t, metascrape.ErrorMessage(err), "HTTP 403")
	})

	t.Run("connection failure is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listening anymore

		f := mshttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := mshttp.NewFetcher()
		_, err := f.Fetch(ctx, srv.URL)
		assert.Equal(t, metascrape.EUNAVAILABLE, metascrape.ErrorCode(err))
	})

	t.Run("malformed URL is invalid", func(t *testing.T) {
		t.Parallel()

		f := mshttp.NewFetcher()
		_, err := f.Fetch(context.Background(), "http://bad url with spaces")
		assert.Equal(t, metascrape.EINVALID, metascrape.ErrorCode(err))
	})
}
