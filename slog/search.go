package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/akarpinski/metascrape"
)

// Ensure LoggingSearchService implements metascrape.SearchService.
var _ metascrape.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with query logging.
type LoggingSearchService struct {
	next   metascrape.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next metascrape.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the outcome.
func (s *LoggingSearchService) Search(ctx context.Context, req metascrape.SearchRequest) ([]metascrape.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, req)
	if err != nil {
		s.logger.Error("search",
			"query", req.Query,
			"engine", req.Engine,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", req.Query,
		"engine", req.Engine,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}
