// Package suggest finds close matches for mistyped names (script
// operations, keymap commands, flags) using Levenshtein distance.
package suggest

import (
	"fmt"
	"slices"
	"strings"
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// Closest returns up to three names from valid that are near unknown,
// best first. Leading dashes are ignored on both sides.
func Closest(unknown string, valid []string) []string {
	unknown = strings.ToLower(strings.TrimLeft(unknown, "-"))
	if unknown == "" {
		return nil
	}

	type scored struct {
		name  string
		score int
	}
	var candidates []scored
	// Only suggest if reasonably close (within 2 edits or a third of the length)
	maxDist := max(2, len(unknown)/3)
	for _, v := range valid {
		dist := levenshtein(unknown, strings.ToLower(strings.TrimLeft(v, "-")))
		if dist <= maxDist {
			candidates = append(candidates, scored{v, dist})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return a.score - b.score
	})

	var result []string
	for i := 0; i < len(candidates) && i < 3; i++ {
		result = append(result, candidates[i].name)
	}
	return result
}

// Hint returns " (did you mean x?)" for the closest match, or ""
func Hint(unknown string, valid []string) string {
	matches := Closest(unknown, valid)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %s?)", strings.Join(matches, " or "))
}
