package diagnosis

import (
	"cmp"
	"slices"
)

const (
	// MatchThreshold is exclusive: raw scores at or below it are dropped
	MatchThreshold = 20.0

	confidenceFloor   = 20
	manyMatchesLimit  = 5
	weakConfidenceCap = 50
)

var severityCues = []string{"severe", "intense", "extreme"}

// Match is one ranked condition for a query
type Match struct {
	Condition       Condition `json:"condition"`
	Confidence      int       `json:"confidence"`
	RawConfidence   int       `json:"raw_confidence"`
	MatchedSymptoms []string  `json:"matched_symptoms"`
}

// Analyzer ranks catalog conditions against free-text symptoms
type Analyzer struct {
	catalog *Catalog
}

// NewAnalyzer creates an analyzer over the given catalog
func NewAnalyzer(catalog *Catalog) *Analyzer {
	return &Analyzer{catalog: catalog}
}

// Catalog returns the catalog the analyzer reads from
func (a *Analyzer) Catalog() *Catalog {
	return a.catalog
}

// Analyze extracts symptoms from input, scores every condition and returns
// the matches above the threshold, adjusted and sorted by confidence
// (highest first). The result depends only on input and the catalog.
func (a *Analyzer) Analyze(input string) []Match {
	return a.AnalyzeSet(ExtractSymptoms(input))
}

// AnalyzeSet is Analyze for an already extracted symptom set
func (a *Analyzer) AnalyzeSet(symptoms SymptomSet) []Match {
	matches := make([]Match, 0)

	for _, c := range a.catalog.conditions {
		raw := Score(c, symptoms)
		if raw <= MatchThreshold {
			continue
		}
		confidence := int(raw)
		matches = append(matches, Match{
			Condition:       c,
			Confidence:      confidence,
			RawConfidence:   confidence,
			MatchedSymptoms: MatchedSymptoms(c, symptoms),
		})
	}

	sortByConfidence(matches)

	return adjustConfidence(matches, symptoms)
}

// adjustConfidence applies the post-scoring heuristics. Every rule reads the
// match's original matched symptoms and severity; rules apply in order on the
// same running value and each result is clamped.
func adjustConfidence(matches []Match, symptoms SymptomSet) []Match {
	severeCue := symptoms.anyTokenContains(severityCues...)
	tooMany := len(matches) > manyMatchesLimit

	adjusted := make([]Match, len(matches))
	for i, m := range matches {
		c := m.Confidence
		matched := len(m.MatchedSymptoms)

		if matched >= 3 {
			c = clampConfidence(c + 10)
		} else if m.Condition.Severity == SeverityMild && matched < 2 {
			c = clampConfidence(max(confidenceFloor, c-15))
		}

		if severeCue && m.Condition.Severity == SeveritySevere {
			c = clampConfidence(c + 15)
		}

		if tooMany && c < weakConfidenceCap {
			c = clampConfidence(max(confidenceFloor, c-10))
		}

		m.Confidence = c
		adjusted[i] = m
	}

	sortByConfidence(adjusted)
	return adjusted
}

func sortByConfidence(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

func clampConfidence(c int) int {
	return max(0, min(100, c))
}
