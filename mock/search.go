package mock

import (
	"context"

	"github.com/akarpinski/metascrape"
)

var _ metascrape.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of metascrape.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error) {
	return s.SearchFn(ctx, req)
}
