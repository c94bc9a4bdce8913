// Package similarity scores the overlap between two free-text tag sets.
package similarity

import (
	"math"
	"strings"
)

// Score computes the Jaccard index between two tag sequences as an integer
// percentage in [0, 100]. Tags are lower-cased before comparison and
// duplicates within a sequence collapse to set semantics. Either sequence
// being empty yields 0.
func Score(interests, skills []string) int {
	if len(interests) == 0 || len(skills) == 0 {
		return 0
	}

	interestSet := normalize(interests)
	skillSet := normalize(skills)

	intersection := 0
	for tag := range interestSet {
		if _, ok := skillSet[tag]; ok {
			intersection++
		}
	}

	// Union counts every unique tag from both sides, including tags present
	// in only one set.
	union := len(interestSet)
	for tag := range skillSet {
		if _, ok := interestSet[tag]; !ok {
			union++
		}
	}

	if union == 0 {
		return 0
	}

	return int(math.Round(float64(intersection) / float64(union) * 100))
}

func normalize(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(tag)] = struct{}{}
	}
	return set
}
