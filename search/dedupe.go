package search

import "github.com/fwojciec/bookshelf"

// Dedupe collapses records describing the same book (see
// bookshelf.Book.IdentifierKey) into the single most complete one.
//
// Groups are returned in the order their first member appears. Within a
// group the highest CompletenessScore wins; on a tie the earliest record
// is kept. Records without a usable title are dropped. Dedupe is
// idempotent.
func Dedupe(books []*bookshelf.Book) []*bookshelf.Book {
	type group struct {
		best  *bookshelf.Book
		score int
	}

	index := make(map[string]int)
	var groups []group
	for _, b := range books {
		if b == nil {
			continue
		}
		key := b.IdentifierKey()
		if key == "" {
			continue
		}

		score := b.CompletenessScore()
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, group{best: b, score: score})
			continue
		}
		if score > groups[i].score {
			groups[i] = group{best: b, score: score}
		}
	}

	result := make([]*bookshelf.Book, len(groups))
	for i, g := range groups {
		result[i] = g.best
	}
	return result
}
