// Package htmltomarkdown renders catalog descriptions as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/bookshelf"
)

// Ensure Sanitizer implements bookshelf.Sanitizer at compile time.
var _ bookshelf.Sanitizer = (*Sanitizer)(nil)

// Sanitizer wraps html-to-markdown so description formatting (emphasis,
// lists, links) survives as Markdown instead of being stripped.
type Sanitizer struct {
	conv *converter.Converter
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Sanitizer{conv: conv}
}

// Sanitize converts HTML in s to Markdown.
// If conversion fails the trimmed input is returned unchanged.
func (s *Sanitizer) Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	result, err := s.conv.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}

	return strings.TrimSpace(result)
}
