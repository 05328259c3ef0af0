// Package fuzzy provides edit-distance nearest-string lookup for
// "did you mean" suggestions and library-name validation.
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the case-insensitive Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// BestMatches returns the candidates closest to query, nearest first.
// A candidate qualifies when its distance is at most half the query length,
// or when it shares a non-empty case-insensitive prefix with the query. The
// prefix rule rescues long related names whose relative distance is large,
// while the half-length cap keeps short unrelated names out. Ties keep input
// order. An empty result means "no suggestion"; it is never an error.
func BestMatches(query string, candidates []string) []string {
	q := strings.ToLower(query)
	limit := utf8.RuneCountInString(query) / 2

	type match struct {
		name string
		dist int
	}
	var matches []match
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		d := levenshtein.ComputeDistance(c, q)
		if d <= limit || sharesPrefix(c, q) {
			matches = append(matches, match{name: cand, dist: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

// sharesPrefix reports whether two lowercased strings have a common prefix of
// at least one rune.
func sharesPrefix(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ra, _ := utf8.DecodeRuneInString(a)
	rb, _ := utf8.DecodeRuneInString(b)
	return ra == rb
}
