// Package fuzzy provides typo suggestions for CLI error messages
// Used by argv/suggest.go for "did you mean" candidates
package fuzzy

import (
	"unicode/utf8"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a candidate that passed the distance filter
type Match struct {
	Value    string
	Distance int
}

// Matcher filters candidates by Levenshtein distance relative to the
// length of the input. A candidate is kept when distance*den <= len*num.
type Matcher struct {
	num, den int
}

// NewMatcher creates a matcher that accepts candidates within num/den of
// the input length
func NewMatcher(num, den int) *Matcher {
	if den <= 0 {
		den = 1
	}
	return &Matcher{num: num, den: den}
}

// HalfLength is the default matcher: at most half the input length
var HalfLength = NewMatcher(1, 2)

// FindMatches returns every accepted candidate in candidate order
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	n := utf8.RuneCountInString(input)
	var matches []Match
	for _, c := range candidates {
		d := fuzzysearch.LevenshteinDistance(input, c)
		if d*m.den <= n*m.num {
			matches = append(matches, Match{Value: c, Distance: d})
		}
	}
	return matches
}

// Suggestions returns the accepted candidate strings in candidate order
func (m *Matcher) Suggestions(input string, candidates []string) []string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Value
	}
	return out
}

// FindBest returns the closest accepted candidate, the earliest one on
// ties, or "" when none is accepted
func (m *Matcher) FindBest(input string, candidates []string) string {
	best := Match{Distance: -1}
	for _, match := range m.FindMatches(input, candidates) {
		if best.Distance < 0 || match.Distance < best.Distance {
			best = match
		}
	}
	return best.Value
}

// Suggest filters candidates with the HalfLength matcher
func Suggest(input string, candidates []string) []string {
	return HalfLength.Suggestions(input, candidates)
}
