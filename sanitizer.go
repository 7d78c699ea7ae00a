package bookshelf

// Sanitizer turns catalog-supplied description markup into display text.
type Sanitizer interface {
	// Sanitize strips or rewrites HTML in s.
	// Plain text passes through with whitespace normalized.
	Sanitize(s string) string
}

// Matcher scores how well a search term matches a text.
type Matcher interface {
	// Score returns a value in [0,1] where 0 is an exact match
	// and 1 is no match at all.
	Score(pattern, text string) float64
}
