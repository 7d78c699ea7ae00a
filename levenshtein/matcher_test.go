package levenshtein_test

import (
	"testing"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/levenshtein"
	"github.com/stretchr/testify/assert"
)

// Compile-time verification that Matcher implements bookshelf.Matcher
var _ bookshelf.Matcher = (*levenshtein.Matcher)(nil)

func TestMatcher_Score(t *testing.T) {
	t.Parallel()

	m := levenshtein.NewMatcher()

	t.Run("exact match scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, m.Score("Dune", "dune"))
	})

	t.Run("prefix match scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, m.Score("Dune", "Dune Messiah"))
	})

	t.Run("later occurrence pays offset penalty", func(t *testing.T) {
		t.Parallel()

		score := m.Score("Dune", "Children of Dune")

		assert.InDelta(t, 0.12, score, 1e-9)
	})

	t.Run("single typo stays under relevance threshold", func(t *testing.T) {
		t.Parallel()

		score := m.Score("Herbert", "Frank Hebert")

		assert.Less(t, score, 0.4)
		assert.Greater(t, score, 0.0)
	})

	t.Run("unrelated text scores high", func(t *testing.T) {
		t.Parallel()
		assert.GreaterOrEqual(t, m.Score("Dune", "Pride and Prejudice"), 0.4)
	})

	t.Run("empty text scores one", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, m.Score("Dune", ""))
	})

	t.Run("empty pattern scores one", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, m.Score("  ", "Dune"))
	})

	t.Run("text shorter than pattern", func(t *testing.T) {
		t.Parallel()

		score := m.Score("Dunes", "Dune")

		assert.InDelta(t, 0.2, score, 1e-9)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		t.Parallel()

		for _, text := range []string{"x", "a very long unrelated title about gardening", "ДЮНА"} {
			score := m.Score("Dune", text)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})
}
