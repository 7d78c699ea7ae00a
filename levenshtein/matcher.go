// Package levenshtein scores fuzzy text matches with edit distance.
package levenshtein

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/bookshelf"
)

// DefaultDistance is how many characters into the text a match may start
// before its offset alone costs a full point.
const DefaultDistance = 100

// Ensure Matcher implements bookshelf.Matcher at compile time.
var _ bookshelf.Matcher = (*Matcher)(nil)

// Matcher finds the best approximate occurrence of a pattern inside a text.
//
// Each candidate window of the text costs editDistance/len(pattern) plus
// offset/Distance, so "Dune" scores 0 against "Dune Messiah" and a little
// more against "Children of Dune". Scores are clamped to [0,1].
type Matcher struct {
	// Distance is the offset penalty divisor. Zero means DefaultDistance.
	Distance int
}

// NewMatcher creates a Matcher with DefaultDistance.
func NewMatcher() *Matcher {
	return &Matcher{Distance: DefaultDistance}
}

// Score returns 0 for an exact match and 1 for no match.
// Comparison ignores case and surrounding whitespace.
func (m *Matcher) Score(pattern, text string) float64 {
	p := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	t := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(p) == 0 || len(t) == 0 {
		return 1
	}
	if string(p) == string(t) {
		return 0
	}

	distance := m.Distance
	if distance <= 0 {
		distance = DefaultDistance
	}

	pattern = string(p)
	best := 1.0
	// Windows one rune shorter or longer than the pattern absorb a single
	// insertion or deletion without paying for the rest of the text.
	for offset := 0; offset < len(t); offset++ {
		penalty := float64(offset) / float64(distance)
		if penalty >= best {
			break
		}
		for _, width := range []int{len(p) - 1, len(p), len(p) + 1} {
			if width <= 0 {
				continue
			}
			end := min(offset+width, len(t))
			d := levenshtein.ComputeDistance(pattern, string(t[offset:end]))
			if score := float64(d)/float64(len(p)) + penalty; score < best {
				best = score
			}
			if end == len(t) {
				break
			}
		}
	}

	return max(0, min(1, best))
}
