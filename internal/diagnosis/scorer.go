package diagnosis

import "strings"

const (
	commonWeight  = 1.0
	rareWeight    = 0.5
	partialWeight = 0.3
	maxScore      = 100.0
)

// overlaps is the loose match used everywhere: either string contains the other
func overlaps(token, phrase string) bool {
	return strings.Contains(token, phrase) || strings.Contains(phrase, token)
}

func anyOverlap(tokens []string, phrase string) bool {
	for _, t := range tokens {
		if overlaps(t, phrase) {
			return true
		}
	}
	return false
}

// Score returns the raw relevance of a condition for a symptom set, in [0,100].
//
// Each common symptom is worth 1 and each rare symptom 0.5 toward both the
// score and the total. On top of that every (token, common symptom) pair that
// overlaps adds 0.3 to both, so a symptom already counted by the first pass is
// rewarded again.
func Score(c Condition, symptoms SymptomSet) float64 {
	tokens := symptoms.tokens

	var score, total float64

	for _, s := range c.CommonSymptoms {
		s = strings.ToLower(s)
		total += commonWeight
		if anyOverlap(tokens, s) {
			score += commonWeight
		}
	}

	for _, s := range c.RareSymptoms {
		s = strings.ToLower(s)
		total += rareWeight
		if anyOverlap(tokens, s) {
			score += rareWeight
		}
	}

	for _, t := range tokens {
		for _, s := range c.CommonSymptoms {
			if overlaps(t, strings.ToLower(s)) {
				score += partialWeight
				total += partialWeight
			}
		}
	}

	if total == 0 {
		return 0
	}
	return min(maxScore, score/total*100)
}

// MatchedSymptoms lists the condition's symptoms (common first, then rare)
// that overlap any token
func MatchedSymptoms(c Condition, symptoms SymptomSet) []string {
	matched := make([]string, 0, 4)
	for _, s := range c.AllSymptoms() {
		if anyOverlap(symptoms.tokens, strings.ToLower(s)) {
			matched = append(matched, s)
		}
	}
	return matched
}
