package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/akarpinski/metascrape"
	"github.com/akarpinski/metascrape/mock"
	msslog "github.com/akarpinski/metascrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query engine and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SearchService{
			SearchFn: func(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error) {
				return []metascrape.SearchResult{
					{Title: "A", URL: "https://a.example"},
					{Title: "B", URL: "https://b.example"},
				}, nil
			},
		}

		svc := msslog.NewLoggingSearchService(inner, logger)
		results, err := svc.Search(context.Background(), metascrape.SearchRequest{Query: "golang", Engine: "duckduckgo"})

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "query=golang")
		assert.Contains(t, output, "engine=duckduckgo")
		assert.Contains(t, output, "results=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SearchService{
			SearchFn: func(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error) {
				return nil, errors.New("backend down")
			},
		}

		svc := msslog.NewLoggingSearchService(inner, logger)
		_, err := svc.Search(context.Background(), metascrape.SearchRequest{Query: "golang"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "search")
		assert.Contains(t, output, "err=\"backend down\"")
	})
}
