package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	migraineLike := Condition{
		Name:           "Test Migraine",
		CommonSymptoms: []string{"headache", "nausea"},
		RareSymptoms:   []string{"aura"},
	}

	tests := []struct {
		name      string
		condition Condition
		symptoms  SymptomSet
		want      float64
	}{
		{
			name:      "no symptoms",
			condition: migraineLike,
			symptoms:  NewSymptomSet(),
			want:      0,
		},
		{
			// 1 + 0.3 over 1 + 1 + 0.5 + 0.3
			name:      "one common symptom",
			condition: migraineLike,
			symptoms:  NewSymptomSet("headache"),
			want:      1.3 / 2.8 * 100,
		},
		{
			// 0.5 over 2.5
			name:      "rare symptom only",
			condition: migraineLike,
			symptoms:  NewSymptomSet("aura"),
			want:      20,
		},
		{
			// token inside phrase and phrase inside token both count
			name:      "bidirectional containment",
			condition: Condition{CommonSymptoms: []string{"joint pain", "swelling"}},
			symptoms:  NewSymptomSet("pain", "severe swelling today"),
			want:      2.6 / 2.6 * 100,
		},
		{
			// both tokens overlap "headache": 1 + 0.3 + 0.3 over 2 + 0.5 + 0.6
			name:      "partial pass counts every overlapping pair",
			condition: migraineLike,
			symptoms:  NewSymptomSet("headache", "bad headache"),
			want:      1.6 / 3.1 * 100,
		},
		{
			name:      "catalog phrases are compared lowercase",
			condition: Condition{CommonSymptoms: []string{"Runny Nose"}},
			symptoms:  NewSymptomSet("runny nose"),
			want:      100,
		},
		{
			name:      "condition without symptoms",
			condition: Condition{},
			symptoms:  NewSymptomSet("headache"),
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.condition, tt.symptoms)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestScore_CommonCold(t *testing.T) {
	cold, ok := DefaultCatalog().Get("common-cold")
	if !ok {
		t.Fatal("common-cold missing from default catalog")
	}

	got := Score(cold, ExtractSymptoms("I have a runny nose, sneezing, and congestion"))

	// 3 common hits and 6 overlapping pairs: 4.8 / 7.8
	assert.InDelta(t, 4.8/7.8*100, got, 1e-9)
}

func TestMatchedSymptoms(t *testing.T) {
	c := Condition{
		CommonSymptoms: []string{"fever", "chest pain", "cough"},
		RareSymptoms:   []string{"chills", "nausea"},
	}

	got := MatchedSymptoms(c, NewSymptomSet("nausea", "cough", "pain"))

	assert.Equal(t, []string{"chest pain", "cough", "nausea"}, got)
}

func TestMatchedSymptoms_None(t *testing.T) {
	c := Condition{CommonSymptoms: []string{"fever"}}

	assert.Empty(t, MatchedSymptoms(c, NewSymptomSet("rash")))
}
