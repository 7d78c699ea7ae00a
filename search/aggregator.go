// Package search aggregates book catalogs into one ranked result list.
// It fans out to every provider, merges and deduplicates their records,
// and ranks them by fuzzy relevance to the search terms.
package search

import (
	"context"

	"github.com/fwojciec/bookshelf"
	"golang.org/x/sync/errgroup"
)

// DefaultRetries is the number of additional attempts each catalog request gets.
const DefaultRetries = 3

// Ensure Aggregator implements bookshelf.Searcher at compile time.
var _ bookshelf.Searcher = (*Aggregator)(nil)

// Aggregator queries every provider concurrently and merges the results.
type Aggregator struct {
	Providers []bookshelf.BookProvider
	Matcher   bookshelf.Matcher

	// Retries per catalog request. Zero means DefaultRetries;
	// negative disables retrying.
	Retries int
}

// FetchBookData returns at most query.Limit books.
//
// Provider failures contribute nothing instead of failing the call, so an
// empty result means either no matches or no reachable catalog. Queries
// without any term, or with a non-positive limit, return an empty list
// without touching the network. A canceled ctx yields an empty list.
func (a *Aggregator) FetchBookData(ctx context.Context, query bookshelf.SearchQuery) []*bookshelf.Book {
	q := query.Normalize()
	if q.IsEmpty() || q.Limit <= 0 {
		return []*bookshelf.Book{}
	}

	all, err := a.fetchAll(ctx, q)
	if err != nil {
		return []*bookshelf.Book{}
	}
	books := Dedupe(all)

	if q.HasText() {
		books = Rank(books, q, a.Matcher)
	}

	if len(books) > q.Limit {
		books = books[:q.Limit]
	}
	return books
}

// fetchAll runs every provider in parallel. Results are concatenated in
// provider order, whatever order the providers finish in. It fails only
// when ctx is done.
func (a *Aggregator) fetchAll(ctx context.Context, q bookshelf.SearchQuery) ([]*bookshelf.Book, error) {
	retries := a.Retries
	if retries == 0 {
		retries = DefaultRetries
	}

	results := make([][]*bookshelf.Book, len(a.Providers))

	// A plain Group: one provider failing must not cancel the others.
	// Failures are absorbed and logged by the provider decorators, so the
	// only error a goroutine reports is the caller's cancellation.
	var g errgroup.Group
	for i, p := range a.Providers {
		g.Go(func() error {
			books, err := p.FetchBooks(ctx, q, retries)
			if err != nil {
				return ctx.Err()
			}
			results[i] = books
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*bookshelf.Book
	for _, books := range results {
		all = append(all, books...)
	}
	return all, nil
}
