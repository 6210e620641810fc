package diagnosis

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// symptomKeywords is the fixed vocabulary looked up in every message
var symptomKeywords = []string{
	"headache", "fever", "cough", "sore throat", "nausea", "vomiting", "diarrhea",
	"fatigue", "pain", "ache", "dizziness", "shortness of breath", "chest pain",
	"stomach pain", "abdominal pain", "joint pain", "muscle pain", "back pain",
	"rash", "itchy", "sneezing", "runny nose", "congestion", "wheezing",
	"chills", "sweating", "loss of appetite", "weight loss", "weight gain",
	"blurred vision", "sensitivity to light", "sensitivity to sound", "confusion",
	"memory problems", "difficulty concentrating", "irritability", "anxiety",
	"depression", "sadness", "sleep problems", "insomnia", "frequent urination",
	"burning sensation", "swollen", "stiffness", "numbness", "tingling",
}

// phraseDelimiters split a message into clause-like phrases
const phraseDelimiters = ",.?!;"

// minPhraseLength is exclusive: a phrase needs more runes than this
const minPhraseLength = 3

// SymptomSet is a deduplicated set of lowercase symptom tokens
type SymptomSet struct {
	tokens []string // sorted, unique
}

// NewSymptomSet builds a set from arbitrary tokens, lowercasing them
func NewSymptomSet(tokens ...string) SymptomSet {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(t)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return SymptomSet{tokens: out}
}

// Len returns the number of distinct tokens
func (s SymptomSet) Len() int {
	return len(s.tokens)
}

// Contains reports whether token is in the set
func (s SymptomSet) Contains(token string) bool {
	_, found := slices.BinarySearch(s.tokens, token)
	return found
}

// Sorted returns the tokens in lexical order
func (s SymptomSet) Sorted() []string {
	return slices.Clone(s.tokens)
}

// anyTokenContains reports whether some token contains one of the cues
func (s SymptomSet) anyTokenContains(cues ...string) bool {
	for _, t := range s.tokens {
		for _, cue := range cues {
			if strings.Contains(t, cue) {
				return true
			}
		}
	}
	return false
}

// ExtractSymptoms turns free text into symptom tokens: every vocabulary
// keyword present in the text, plus every delimiter-separated phrase longer
// than three characters. Phrases are kept untrimmed and may be noise.
func ExtractSymptoms(input string) SymptomSet {
	lower := strings.ToLower(input)

	tokens := make([]string, 0, 8)
	for _, keyword := range symptomKeywords {
		if strings.Contains(lower, keyword) {
			tokens = append(tokens, keyword)
		}
	}

	phrases := strings.FieldsFunc(lower, func(r rune) bool {
		return strings.ContainsRune(phraseDelimiters, r)
	})
	for _, phrase := range phrases {
		if utf8.RuneCountInString(phrase) > minPhraseLength {
			tokens = append(tokens, phrase)
		}
	}

	return NewSymptomSet(tokens...)
}
