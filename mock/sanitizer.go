package mock

import "github.com/fwojciec/bookshelf"

var _ bookshelf.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of bookshelf.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(s string) string
}

func (s *Sanitizer) Sanitize(str string) string {
	return s.SanitizeFn(str)
}

var _ bookshelf.Matcher = (*Matcher)(nil)

// Matcher is a mock implementation of bookshelf.Matcher.
type Matcher struct {
	ScoreFn func(pattern, text string) float64
}

func (m *Matcher) Score(pattern, text string) float64 {
	return m.ScoreFn(pattern, text)
}
