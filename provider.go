package bookshelf

import (
	"context"
	"strings"
)

// SearchQuery holds the caller's search terms.
type SearchQuery struct {
	Title  string
	Author string
	ISBN   string
	Limit  int
}

// Normalize returns a copy of q with surrounding whitespace removed.
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Title:  strings.TrimSpace(q.Title),
		Author: strings.TrimSpace(q.Author),
		ISBN:   strings.TrimSpace(q.ISBN),
		Limit:  q.Limit,
	}
}

// IsEmpty reports whether q has no usable search criterion.
func (q SearchQuery) IsEmpty() bool {
	q = q.Normalize()
	return q.Title == "" && q.Author == "" && q.ISBN == ""
}

// HasText reports whether q has a title or author term.
func (q SearchQuery) HasText() bool {
	q = q.Normalize()
	return q.Title != "" || q.Author != ""
}

// BookProvider is a single external book catalog.
type BookProvider interface {
	// Name identifies the catalog in logs and in Book.Source.
	Name() string

	// FetchBooks queries the catalog and maps its answer into canonical
	// books. Each request is retried up to retries additional times.
	// Failures are returned as *ProviderError.
	FetchBooks(ctx context.Context, query SearchQuery, retries int) ([]*Book, error)
}

// Searcher aggregates every configured catalog.
type Searcher interface {
	// FetchBookData returns at most query.Limit deduplicated, ranked books.
	// Catalog failures are absorbed; the result may be empty but is never
	// an error.
	FetchBookData(ctx context.Context, query SearchQuery) []*Book
}
