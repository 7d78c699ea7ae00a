package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookshelf"
)

// Ensure LoggingProvider implements bookshelf.BookProvider.
var _ bookshelf.BookProvider = (*LoggingProvider)(nil)

// LoggingProvider wraps a BookProvider with logging.
type LoggingProvider struct {
	next   bookshelf.BookProvider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next bookshelf.BookProvider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Name returns the wrapped provider's name.
func (p *LoggingProvider) Name() string {
	return p.next.Name()
}

// FetchBooks delegates to the wrapped provider and logs the lookup.
func (p *LoggingProvider) FetchBooks(ctx context.Context, query bookshelf.SearchQuery, retries int) (books []*bookshelf.Book, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		p.logger.Log(ctx, level, "provider lookup",
			"provider", p.next.Name(),
			"title", query.Title,
			"author", query.Author,
			"isbn", query.ISBN,
			"count", len(books),
			"duration", time.Since(begin),
			"code", bookshelf.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return p.next.FetchBooks(ctx, query, retries)
}
