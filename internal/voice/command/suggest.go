package command

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// nearestName returns the candidate closest to fragment by edit distance, or
// "" when nothing is reasonably close. Both whole names and their single
// words are compared, so "peperoni" still finds "Pepperoni Pizza".
func nearestName(fragment string, candidates []string) string {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, name := range candidates {
		d := distanceTo(fragment, strings.ToLower(name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(fragment) {
		return ""
	}
	return best
}

func distanceTo(fragment, name string) int {
	d := levenshtein.ComputeDistance(fragment, name)
	for _, w := range strings.Fields(name) {
		if wd := levenshtein.ComputeDistance(fragment, w); wd < d {
			d = wd
		}
	}
	return d
}

func maxSuggestDistance(fragment string) int {
	n := len([]rune(fragment)) / 3
	if n < 1 {
		return 1
	}
	return n
}
