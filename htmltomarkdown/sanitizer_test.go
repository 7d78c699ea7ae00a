package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/htmltomarkdown"
	"github.com/stretchr/testify/assert"
)

// Ensure Sanitizer implements bookshelf.Sanitizer at compile time.
var _ bookshelf.Sanitizer = (*htmltomarkdown.Sanitizer)(nil)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("keeps emphasis as markdown", func(t *testing.T) {
		t.Parallel()

		md := htmltomarkdown.NewSanitizer().Sanitize(`<p>Hello <b>world</b></p>`)

		assert.Equal(t, "Hello **world**", md)
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		md := htmltomarkdown.NewSanitizer().Sanitize(`<p>See <a href="https://openlibrary.org">Open Library</a>.</p>`)

		assert.Contains(t, md, "[Open Library](https://openlibrary.org)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		md := htmltomarkdown.NewSanitizer().Sanitize(`<ul><li>First</li><li>Second</li></ul>`)

		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
	})

	t.Run("passes plain text through", func(t *testing.T) {
		t.Parallel()

		md := htmltomarkdown.NewSanitizer().Sanitize("  A desert planet.  ")

		assert.Equal(t, "A desert planet.", md)
	})

	t.Run("returns empty for blank input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, htmltomarkdown.NewSanitizer().Sanitize(" \n "))
	})
}
