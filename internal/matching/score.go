package matching

import (
	"math"
	"sort"
)

// Score maps a cosine similarity onto 0..100 with two decimals.
// Negative similarities are reported as 0.
func Score(similarity float64) float64 {
	if math.IsNaN(similarity) || similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}

	return math.Round(similarity*100*100) / 100
}

// rank sorts matches by score, highest first, keeping provider order for ties,
// and cuts the list to limit entries.
func rank(matches []Match, limit int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
