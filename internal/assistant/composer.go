package assistant

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/fallback"
)

// Kind says which strategy produced a reply
type Kind string

const (
	KindDetailed Kind = "detailed"
	KindGeneral  Kind = "general"
	KindKeyword  Kind = "keyword"
	KindGeneric  Kind = "generic"
)

const (
	detailedThreshold  = 40
	consideredMatches  = 3
	maxListedSymptoms  = 5
	maxOtherConditions = 2
	otherWithinPoints  = 20
	maxGeneralRecs     = 4
	chronicDuration    = "Chronic condition"
)

const (
	detailedDisclaimer = "⚠️ **CRITICAL DISCLAIMER:** This is an educational insight based on symptom analysis, NOT a medical diagnosis. Always consult a licensed healthcare professional for proper evaluation and treatment."
	generalDisclaimer  = "⚠️ **CRITICAL DISCLAIMER:** These are educational insights only, NOT medical diagnoses. Please consult a licensed healthcare professional for proper evaluation."
)

// Response is the assistant's reply to one message
type Response struct {
	Kind    Kind
	Text    string
	Insight *diagnosis.Insight
	Action  fallback.Action
	Matches []diagnosis.Match
}

// Compose turns ranked matches into a reply. Only the top three matches are
// considered. A confident top match gets a detailed write-up, weaker matches a
// short list, and no match at all falls back to keyword replies.
func Compose(matches []diagnosis.Match, message string) Response {
	top := matches[:min(len(matches), consideredMatches)]

	switch {
	case len(top) > 0 && top[0].Confidence >= detailedThreshold:
		return composeDetailed(top)
	case len(top) > 0:
		return composeGeneral(top)
	default:
		return ComposeDefault(message)
	}
}

// ComposeDefault is the keyword-based path used when nothing in the catalog matched
func ComposeDefault(message string) Response {
	fb := fallback.ForMessage(message)
	kind := KindGeneric
	if fb.Insight != nil {
		kind = KindKeyword
	}
	return Response{
		Kind:    kind,
		Text:    fb.Content,
		Insight: fb.Insight,
		Action:  fb.Action,
	}
}

func composeDetailed(top []diagnosis.Match) Response {
	match := top[0]
	c := match.Condition

	var b strings.Builder
	fmt.Fprintf(&b, "**Potential Condition: %s**\n", c.Name)
	fmt.Fprintf(&b, "Confidence Level: %d%%\n", match.Confidence)
	fmt.Fprintf(&b, "Category: %s\n\n", c.Category)
	b.WriteString(c.Description)
	b.WriteString("\n\n**Matched Symptoms:**")
	// casers keep state, one per reply
	title := cases.Title(language.English)
	for _, s := range match.MatchedSymptoms[:min(len(match.MatchedSymptoms), maxListedSymptoms)] {
		b.WriteString("\n• " + title.String(s))
	}

	b.WriteString("\n\n**Recommendations:**")
	for _, r := range c.Recommendations {
		b.WriteString("\n• " + r)
	}

	if c.TypicalDuration != chronicDuration {
		fmt.Fprintf(&b, "\n\n**Typical Duration:** %s", c.TypicalDuration)
	}

	others := make([]diagnosis.Match, 0, maxOtherConditions)
	for _, other := range top {
		if len(others) == maxOtherConditions {
			break
		}
		if other.Confidence >= match.Confidence-otherWithinPoints && other.Condition.Name != c.Name {
			others = append(others, other)
		}
	}
	if len(others) > 0 {
		b.WriteString("\n\n**Other Possible Conditions:**")
		for _, o := range others {
			fmt.Fprintf(&b, "\n• %s (%d%% confidence)", o.Condition.Name, o.Confidence)
		}
	}

	b.WriteString("\n\n" + detailedDisclaimer)

	insight := diagnosis.InsightFromMatch(match)
	return Response{
		Kind:    KindDetailed,
		Text:    b.String(),
		Insight: &insight,
		Action:  actionFor(c.Severity),
		Matches: top,
	}
}

func composeGeneral(top []diagnosis.Match) Response {
	var b strings.Builder
	b.WriteString("Based on your symptoms, I've identified several possible conditions. Here are the most likely matches:\n")

	for i, m := range top {
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, m.Condition.Name)
		fmt.Fprintf(&b, "\n   Confidence: %d%%", m.Confidence)
		fmt.Fprintf(&b, "\n   Category: %s", m.Condition.Category)
		fmt.Fprintf(&b, "\n   Severity: %s", m.Condition.Severity)
		b.WriteString("\n")
	}

	best := top[0]
	fmt.Fprintf(&b, "\n**Most Likely:** %s (%d%% confidence)", best.Condition.Name, best.Confidence)
	b.WriteString("\n\n" + best.Condition.Description)
	b.WriteString("\n\n**Recommendations:**")
	recs := best.Condition.Recommendations
	for _, r := range recs[:min(len(recs), maxGeneralRecs)] {
		b.WriteString("\n• " + r)
	}

	b.WriteString("\n\n" + generalDisclaimer)

	insight := diagnosis.InsightFromMatch(best)
	return Response{
		Kind:    KindGeneral,
		Text:    b.String(),
		Insight: &insight,
		Action:  actionFor(best.Condition.Severity),
		Matches: top,
	}
}

func actionFor(s diagnosis.Severity) fallback.Action {
	switch s {
	case diagnosis.SeveritySevere:
		return fallback.ActionEmergency
	case diagnosis.SeverityModerate:
		return fallback.ActionMonitor
	default:
		return fallback.ActionSelfCare
	}
}
