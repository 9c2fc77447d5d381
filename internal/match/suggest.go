package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum Similarity a candidate needs to be suggested.
const DefaultThreshold = 0.6

// maxSuggestions caps how many names Suggest returns.
const maxSuggestions = 3

// Suggest returns up to three candidates whose normalized form is close to
// name, best match first. Ties keep the candidates' input order. An exact
// (normalized) match is always returned alone.
func Suggest(name string, candidates []string, threshold float64) []string {
	type scored struct {
		name  string
		score float64
		index int
	}

	var ranked []scored

	for i, c := range candidates {
		score := Similarity(name, c)
		if score == 1.0 {
			return []string{c}
		}

		if score >= threshold {
			ranked = append(ranked, scored{name: c, score: score, index: i})
		}
	}

	slices.SortFunc(ranked, func(x, y scored) int {
		if c := cmp.Compare(y.score, x.score); c != 0 {
			return c
		}

		return cmp.Compare(x.index, y.index)
	})

	out := make([]string, 0, min(len(ranked), maxSuggestions))
	for _, s := range ranked[:min(len(ranked), maxSuggestions)] {
		out = append(out, s.name)
	}

	return out
}
