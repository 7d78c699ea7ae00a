package mock

import (
	"context"

	"github.com/fwojciec/bookshelf"
)

var _ bookshelf.BookProvider = (*BookProvider)(nil)

// BookProvider is a mock implementation of bookshelf.BookProvider.
type BookProvider struct {
	NameFn       func() string
	FetchBooksFn func(ctx context.Context, query bookshelf.SearchQuery, retries int) ([]*bookshelf.Book, error)
}

func (p *BookProvider) Name() string {
	return p.NameFn()
}

func (p *BookProvider) FetchBooks(ctx context.Context, query bookshelf.SearchQuery, retries int) ([]*bookshelf.Book, error) {
	return p.FetchBooksFn(ctx, query, retries)
}

var _ bookshelf.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of bookshelf.Searcher.
type Searcher struct {
	FetchBookDataFn func(ctx context.Context, query bookshelf.SearchQuery) []*bookshelf.Book
}

func (s *Searcher) FetchBookData(ctx context.Context, query bookshelf.SearchQuery) []*bookshelf.Book {
	return s.FetchBookDataFn(ctx, query)
}
