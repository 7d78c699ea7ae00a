// Package goquery strips HTML from catalog descriptions using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookshelf"
)

// Ensure Sanitizer implements bookshelf.Sanitizer at compile time.
var _ bookshelf.Sanitizer = (*Sanitizer)(nil)

// Sanitizer reduces HTML to plain text, keeping paragraph and line breaks.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize returns the text content of s. Entities are decoded, script and
// style content is dropped and whitespace is collapsed within lines.
func (s *Sanitizer) Sanitize(str string) string {
	if strings.TrimSpace(str) == "" {
		return ""
	}
	if !strings.ContainsAny(str, "<&") {
		return collapseWhitespace(str)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(str))
	if err != nil {
		return collapseWhitespace(str)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, blockquote").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return collapseWhitespace(doc.Text())
}

// collapseWhitespace trims every line, squeezes inner runs of whitespace
// and drops blank lines.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
