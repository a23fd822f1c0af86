// Package suggest produces "did you mean" suggestions for validator error
// messages, ranking candidate names by edit distance from an invalid
// input.
package suggest

import (
	"math"
	"sort"

	"github.com/agnivade/levenshtein"
)

type bySimilarity struct {
	options   []string
	distances []int
}

func (s *bySimilarity) Len() int { return len(s.options) }
func (s *bySimilarity) Swap(i, j int) {
	s.options[i], s.options[j] = s.options[j], s.options[i]
	s.distances[i], s.distances[j] = s.distances[j], s.distances[i]
}
func (s *bySimilarity) Less(i, j int) bool { return s.distances[i] < s.distances[j] }

// List returns the subset of options close enough to input to be worth
// suggesting, nearest first. An option is included only if its edit
// distance from input is within half the length of the longer of the two
// strings (and at least 1), matching the threshold GraphQL reference
// implementations use for "did you mean" hints.
func List(input string, options []string) []string {
	if len(options) == 0 {
		return nil
	}

	var filtered []string
	var distances []int
	inputThreshold := float64(len(input)) / 2.0
	for _, option := range options {
		distance := levenshtein.ComputeDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			filtered = append(filtered, option)
			distances = append(distances, distance)
		}
	}

	sort.Sort(&bySimilarity{filtered, distances})
	return filtered
}

// QuotedList formats options (already ranked by List) as the
// "Did you mean X, Y, or Z?" suffix GraphQL error messages use. It returns
// the empty string when there are no suggestions.
func QuotedList(options []string) string {
	if len(options) == 0 {
		return ""
	}
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "\"" + o + "\""
	}
	switch len(quoted) {
	case 1:
		return "Did you mean " + quoted[0] + "?"
	default:
		last := quoted[len(quoted)-1]
		rest := quoted[:len(quoted)-1]
		joined := rest[0]
		for _, q := range rest[1:] {
			joined += ", " + q
		}
		return "Did you mean " + joined + ", or " + last + "?"
	}
}
