package diagnosis

import (
	"slices"

	"github.com/google/uuid"
)

// Insight is the structured suggestion attached to an assistant reply.
// It is created once and never modified; history stores it as-is.
type Insight struct {
	ID              uuid.UUID `json:"id"`
	Condition       string    `json:"condition"`
	Confidence      int       `json:"confidence"`
	Description     string    `json:"description"`
	Recommendations []string  `json:"recommendations"`
	Severity        Severity  `json:"severity"`
}

// NewInsight builds an insight; confidence is clamped to [0,100]
func NewInsight(condition string, confidence int, description string, recommendations []string, severity Severity) Insight {
	return Insight{
		ID:              uuid.New(),
		Condition:       condition,
		Confidence:      clampConfidence(confidence),
		Description:     description,
		Recommendations: slices.Clone(recommendations),
		Severity:        severity,
	}
}

// InsightFromMatch builds the insight for a ranked match
func InsightFromMatch(m Match) Insight {
	return NewInsight(
		m.Condition.Name,
		m.Confidence,
		m.Condition.Description,
		m.Condition.Recommendations,
		m.Condition.Severity,
	)
}
