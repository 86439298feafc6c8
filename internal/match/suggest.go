package match

import "sort"

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

// Suggest returns the candidates closest to input, best first. Only
// candidates scoring at least MinSimilarity after normalization are
// returned; ties keep the candidates' order.
func Suggest(input string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := Normalize(input)

	var hits []scored

	for _, c := range candidates {
		if c == input {
			continue
		}

		if s := Similarity(norm, Normalize(c)); s >= MinSimilarity {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
