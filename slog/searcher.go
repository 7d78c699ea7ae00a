package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookshelf"
)

// Ensure LoggingSearcher implements bookshelf.Searcher.
var _ bookshelf.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   bookshelf.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next bookshelf.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// FetchBookData delegates to the wrapped searcher and logs the result size.
func (s *LoggingSearcher) FetchBookData(ctx context.Context, query bookshelf.SearchQuery) (books []*bookshelf.Book) {
	defer func(begin time.Time) {
		s.logger.Info("book search",
			"title", query.Title,
			"author", query.Author,
			"isbn", query.ISBN,
			"limit", query.Limit,
			"count", len(books),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FetchBookData(ctx, query)
}
