package search

import (
	"slices"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/levenshtein"
)

// RelevanceThreshold is the exclusive upper bound on the combined fuzzy
// score for a record to be kept.
const RelevanceThreshold = 0.4

// Rank keeps the books relevant to q's title and author terms and orders
// them best match first. Books with equal scores keep their input order.
// A nil matcher falls back to levenshtein.NewMatcher.
func Rank(books []*bookshelf.Book, q bookshelf.SearchQuery, matcher bookshelf.Matcher) []*bookshelf.Book {
	q = q.Normalize()
	if !q.HasText() {
		return books
	}
	if matcher == nil {
		matcher = levenshtein.NewMatcher()
	}

	type scored struct {
		book  *bookshelf.Book
		score float64
	}

	var kept []scored
	for _, b := range books {
		score := RelevanceScore(b, q, matcher)
		if score < RelevanceThreshold {
			kept = append(kept, scored{book: b, score: score})
		}
	}

	slices.SortStableFunc(kept, func(x, y scored) int {
		switch {
		case x.score < y.score:
			return -1
		case x.score > y.score:
			return 1
		}
		return 0
	})

	result := make([]*bookshelf.Book, len(kept))
	for i, s := range kept {
		result[i] = s.book
	}
	return result
}

// RelevanceScore combines the title and author match scores of b against
// q: their average when both terms are given, otherwise the single one.
// It returns 1 when q has neither term.
func RelevanceScore(b *bookshelf.Book, q bookshelf.SearchQuery, matcher bookshelf.Matcher) float64 {
	var sum float64
	var n int
	if q.Title != "" {
		sum += matcher.Score(q.Title, b.Title)
		n++
	}
	if q.Author != "" {
		sum += matcher.Score(q.Author, b.Author)
		n++
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}
