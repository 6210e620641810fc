package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/fallback"
)

func match(name string, confidence int, severity diagnosis.Severity, matched ...string) diagnosis.Match {
	return diagnosis.Match{
		Condition: diagnosis.Condition{
			Name:            name,
			Category:        diagnosis.CategoryNeurological,
			Severity:        severity,
			Description:     name + " description",
			TypicalDuration: "1-2 weeks",
			Recommendations: []string{"Rest", "Hydrate", "Sleep", "Walk", "Stretch"},
		},
		Confidence:      confidence,
		RawConfidence:   confidence,
		MatchedSymptoms: matched,
	}
}

func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	return lines[len(lines)-1]
}

func TestRespond_Detailed(t *testing.T) {
	a := New(diagnosis.NewAnalyzer(diagnosis.DefaultCatalog()))

	resp := a.Respond("I have a runny nose, sneezing, and congestion")

	assert.Equal(t, KindDetailed, resp.Kind)
	require.NotNil(t, resp.Insight)
	assert.Equal(t, "Allergic Rhinitis (Hay Fever)", resp.Insight.Condition)
	assert.Equal(t, 79, resp.Insight.Confidence)
	assert.Equal(t, diagnosis.SeverityMild, resp.Insight.Severity)
	assert.Equal(t, fallback.ActionSelfCare, resp.Action)
	assert.Len(t, resp.Matches, 3)

	assert.True(t, strings.HasPrefix(resp.Text, "**Potential Condition: Allergic Rhinitis (Hay Fever)**\n"))
	assert.Contains(t, resp.Text, "Confidence Level: 79%")
	assert.Contains(t, resp.Text, "Category: Respiratory")
	assert.Contains(t, resp.Text, "• Runny Nose")
	assert.Contains(t, resp.Text, "• Nasal Congestion")
	assert.Contains(t, resp.Text, "**Typical Duration:** Seasonal or chronic")
	assert.Contains(t, resp.Text, "**Other Possible Conditions:**\n• Common Cold (71% confidence)")
	assert.NotContains(t, resp.Text, "Sinusitis")
	assert.Equal(t, detailedDisclaimer, lastLine(resp.Text))
}

func TestRespond_NoSymptoms(t *testing.T) {
	a := New(diagnosis.NewAnalyzer(diagnosis.DefaultCatalog()))

	resp := a.Respond("hi")

	assert.Equal(t, KindGeneric, resp.Kind)
	assert.Nil(t, resp.Insight)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, fallback.ActionDocument, resp.Action)
	assert.True(t, strings.HasPrefix(resp.Text, "Thank you for sharing"))
	assert.Contains(t, strings.ToLower(lastLine(resp.Text)), "not a medical diagnosis")
}

func TestRespondDefault_ChestPain(t *testing.T) {
	a := New(diagnosis.NewAnalyzer(diagnosis.DefaultCatalog()))

	resp := a.RespondDefault("severe chest pain")

	assert.Equal(t, KindKeyword, resp.Kind)
	require.NotNil(t, resp.Insight)
	assert.Equal(t, "Requires Immediate Evaluation", resp.Insight.Condition)
	assert.Equal(t, 85, resp.Insight.Confidence)
	assert.Equal(t, diagnosis.SeveritySevere, resp.Insight.Severity)
	assert.Equal(t, fallback.ActionEmergency, resp.Action)
	assert.Empty(t, resp.Matches)
}

func TestCompose_General(t *testing.T) {
	matches := []diagnosis.Match{
		match("Alpha", 39, diagnosis.SeverityModerate, "a"),
		match("Beta", 30, diagnosis.SeverityMild, "b"),
		match("Gamma", 25, diagnosis.SeveritySevere, "c"),
		match("Delta", 22, diagnosis.SeverityMild, "d"),
	}

	resp := Compose(matches, "whatever")

	assert.Equal(t, KindGeneral, resp.Kind)
	require.NotNil(t, resp.Insight)
	assert.Equal(t, "Alpha", resp.Insight.Condition)
	assert.Equal(t, 39, resp.Insight.Confidence)
	assert.Equal(t, fallback.ActionMonitor, resp.Action)
	assert.Len(t, resp.Matches, 3)

	assert.Contains(t, resp.Text, "1. **Alpha**\n   Confidence: 39%\n   Category: Neurological\n   Severity: Moderate")
	assert.Contains(t, resp.Text, "3. **Gamma**")
	assert.NotContains(t, resp.Text, "Delta")
	assert.Contains(t, resp.Text, "**Most Likely:** Alpha (39% confidence)")
	assert.Contains(t, resp.Text, "• Walk")
	assert.NotContains(t, resp.Text, "• Stretch", "general replies list at most four recommendations")
	assert.Equal(t, generalDisclaimer, lastLine(resp.Text))
}

func TestCompose_DetailedThreshold(t *testing.T) {
	resp := Compose([]diagnosis.Match{match("Alpha", 40, diagnosis.SeverityMild, "a")}, "")

	assert.Equal(t, KindDetailed, resp.Kind)
	assert.NotContains(t, resp.Text, "Other Possible Conditions")
}

func TestCompose_OtherConditions(t *testing.T) {
	matches := []diagnosis.Match{
		match("Alpha", 80, diagnosis.SeveritySevere, "a", "b", "c", "d", "e", "f"),
		match("Alpha", 75, diagnosis.SeverityMild, "a"),
		match("Beta", 60, diagnosis.SeverityMild, "b"),
		match("Gamma", 79, diagnosis.SeverityMild, "c"),
	}

	resp := Compose(matches, "")

	assert.Equal(t, KindDetailed, resp.Kind)
	assert.Equal(t, fallback.ActionEmergency, resp.Action)
	assert.Contains(t, resp.Text, "**Other Possible Conditions:**\n• Beta (60% confidence)")
	assert.NotContains(t, resp.Text, "Gamma", "only the top three matches are considered")
	assert.NotContains(t, resp.Text, "• F\n", "at most five matched symptoms are listed")
	assert.Contains(t, resp.Text, "• E\n")
}

func TestCompose_ChronicDurationOmitted(t *testing.T) {
	m := match("Alpha", 70, diagnosis.SeverityModerate, "a")
	m.Condition.TypicalDuration = "Chronic condition"

	resp := Compose([]diagnosis.Match{m}, "")

	assert.NotContains(t, resp.Text, "Typical Duration")
}

func TestCompose_FallsBackToKeywords(t *testing.T) {
	resp := Compose(nil, "my head has a headache")

	assert.Equal(t, KindKeyword, resp.Kind)
	require.NotNil(t, resp.Insight)
	assert.Equal(t, "Tension Headache", resp.Insight.Condition)
	assert.Equal(t, 72, resp.Insight.Confidence)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, fallback.ActionEmergency, actionFor(diagnosis.SeveritySevere))
	assert.Equal(t, fallback.ActionMonitor, actionFor(diagnosis.SeverityModerate))
	assert.Equal(t, fallback.ActionSelfCare, actionFor(diagnosis.SeverityMild))
}
