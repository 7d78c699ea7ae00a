package bookshelf_test

import (
	"testing"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/stretchr/testify/assert"
)

func TestFormatBooks(t *testing.T) {
	t.Parallel()

	t.Run("formats single book with full metadata", func(t *testing.T) {
		t.Parallel()

		published := time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC)
		books := []*bookshelf.Book{{
			Title:       "Dune",
			Author:      "Frank Herbert",
			Published:   &published,
			Publisher:   "Chilton Books",
			ISBN:        "9780441172719",
			Genre:       "Fiction",
			Source:      "openlibrary",
			Description: "Desert planet.",
		}}

		result := bookshelf.FormatBooks(books)

		expected := "## Dune\nFrank Herbert · 1965 · Chilton Books\nISBN 9780441172719 · Fiction · openlibrary\nDesert planet."
		assert.Equal(t, expected, result)
	})

	t.Run("marks missing author as unknown", func(t *testing.T) {
		t.Parallel()

		result := bookshelf.FormatBooks([]*bookshelf.Book{{Title: "Anonymous Tales"}})

		assert.Equal(t, "## Anonymous Tales\nUnknown author", result)
	})

	t.Run("separates books with blank line", func(t *testing.T) {
		t.Parallel()

		books := []*bookshelf.Book{
			{Title: "One", Author: "A"},
			{Title: "Two", Author: "B"},
		}

		result := bookshelf.FormatBooks(books)

		assert.Equal(t, "## One\nA\n\n## Two\nB", result)
	})

	t.Run("returns empty string for no books", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bookshelf.FormatBooks(nil))
	})
}
