package fallback

import (
	"strings"

	"github.com/healix-app/healix-be/internal/diagnosis"
)

// Action tells the caller how urgent the reply is
type Action string

const (
	ActionSelfCare  Action = "self_care"
	ActionMonitor   Action = "monitor"
	ActionEmergency Action = "emergency"
	ActionDocument  Action = "document"
)

// Response is a keyword-based reply used when no catalog condition matched
type Response struct {
	Content string
	Action  Action
	Insight *diagnosis.Insight
}

// keywordResponse is one canned reply and the phrases that trigger it
type keywordResponse struct {
	keywords        []string
	condition       string
	confidence      int
	description     string
	recommendations []string
	severity        diagnosis.Severity
	action          Action
	content         string
}

// keywordResponses are tried in order; the first whose keyword appears wins
var keywordResponses = []keywordResponse{
	{
		keywords:    []string{"headache"},
		condition:   "Tension Headache",
		confidence:  72,
		description: "Based on your symptoms, this may be a tension headache. Common causes include stress, poor posture, or eye strain.",
		recommendations: []string{
			"Rest in a quiet, dark room",
			"Apply a cold or warm compress",
			"Stay hydrated",
			"Consider over-the-counter pain relief (consult pharmacist)",
		},
		severity: diagnosis.SeverityMild,
		action:   ActionSelfCare,
		content: `**Potential Condition: Tension Headache**
Confidence Level: 72%

Based on your description, this appears to be a tension headache. These are the most common type of headache and are often related to stress or muscle tension.

**Recommendations:**
• Rest in a quiet, dark room
• Apply a cold or warm compress to your forehead
• Stay hydrated throughout the day
• Consider over-the-counter pain relief (consult a pharmacist first)

⚠️ **CRITICAL DISCLAIMER:** This is an educational insight based on limited information, NOT a medical diagnosis. If your headache is severe, persistent, or accompanied by other symptoms, consult a licensed healthcare professional immediately.`,
	},
	{
		keywords:    []string{"fever", "temperature"},
		condition:   "Viral Infection (Possible)",
		confidence:  68,
		description: "Fever is typically the body's response to infection. The pattern and duration can help identify the cause.",
		recommendations: []string{
			"Rest and stay hydrated",
			"Monitor temperature regularly",
			"Use fever-reducing medication if appropriate (consult pharmacist)",
			"Seek medical attention if fever persists >3 days",
		},
		severity: diagnosis.SeverityModerate,
		action:   ActionMonitor,
		content: `**Potential Condition: Viral Infection**
Confidence Level: 68%

Fever is your body's natural defense mechanism against infection. The severity and duration can vary.

**Recommendations:**
• Rest and stay well-hydrated
• Monitor your temperature regularly
• Consider fever-reducing medication (consult a pharmacist)
• Seek medical attention if fever persists beyond 3 days or exceeds 103°F

⚠️ **CRITICAL DISCLAIMER:** This is an educational insight, NOT a medical diagnosis. High or persistent fevers require professional medical evaluation. Always consult a licensed healthcare professional.`,
	},
	{
		keywords:    []string{"cough"},
		condition:   "Upper Respiratory Infection",
		confidence:  65,
		description: "Coughs can result from various causes including allergies, infections, or irritants.",
		recommendations: []string{
			"Stay hydrated to thin mucus",
			"Use a humidifier",
			"Avoid irritants like smoke",
			"Consider honey (adults only) for soothing",
		},
		severity: diagnosis.SeverityMild,
		action:   ActionSelfCare,
		content: `**Potential Condition: Upper Respiratory Infection**
Confidence Level: 65%

Your cough may be related to an upper respiratory infection, allergies, or environmental irritants.

**Recommendations:**
• Stay hydrated to help thin mucus
• Use a humidifier to moisten the air
• Avoid irritants like smoke or strong odors
• Consider honey (adults only) for soothing relief

⚠️ **CRITICAL DISCLAIMER:** This is an educational insight, NOT a medical diagnosis. Persistent or severe coughs, especially with other symptoms, should be evaluated by a licensed healthcare professional.`,
	},
	{
		keywords:    []string{"chest pain", "chest discomfort"},
		condition:   "Requires Immediate Evaluation",
		confidence:  85,
		description: "Chest pain can have serious causes and requires immediate medical attention.",
		recommendations: []string{
			"Seek emergency medical care immediately",
			"Do not delay if pain is severe",
			"Call emergency services if needed",
		},
		severity: diagnosis.SeveritySevere,
		action:   ActionEmergency,
		content: `**⚠️ URGENT: Requires Immediate Medical Evaluation**
Confidence Level: 85%

Chest pain can indicate serious conditions and should be evaluated immediately by a healthcare professional.

**Immediate Actions:**
• Seek emergency medical care right away
• Do not delay if pain is severe or worsening
• Call emergency services if needed

⚠️ **CRITICAL DISCLAIMER:** This is an educational insight, NOT a medical diagnosis. Chest pain requires immediate evaluation by a licensed healthcare professional. Do not ignore or delay seeking care.`,
	},
}

const genericContent = `Thank you for sharing your health concern. I've analyzed your symptoms but couldn't identify a specific condition with high confidence.

**General Recommendations:**
• Document your symptoms in detail
• Note when symptoms occur and any patterns
• Track symptom severity over time
• Monitor for any new or worsening symptoms`

const (
	urgentCaution   = "**Important:** If you're experiencing chest pain, difficulty breathing, or heart-related symptoms, seek immediate medical attention."
	severeCaution   = "**Important:** If your symptoms are severe or worsening, please consult a healthcare professional promptly."
	genericDisclaim = "⚠️ **CRITICAL DISCLAIMER:** This app provides educational insights only and is NOT a medical diagnosis. Always consult a licensed healthcare professional for proper evaluation and treatment of any health concerns."
)

var (
	urgentCues = []string{"chest", "heart", "breathing"}
	severeCues = []string{"severe", "intense", "extreme"}
)

// ForMessage returns the keyword-based reply for a message that matched no
// catalog condition. Without a known keyword the reply is generic advice and
// carries no insight.
func ForMessage(message string) Response {
	lower := strings.ToLower(message)

	for _, kr := range keywordResponses {
		if !containsAny(lower, kr.keywords) {
			continue
		}
		insight := diagnosis.NewInsight(kr.condition, kr.confidence, kr.description, kr.recommendations, kr.severity)
		return Response{
			Content: kr.content,
			Action:  kr.action,
			Insight: &insight,
		}
	}

	return genericResponse(lower)
}

func genericResponse(lower string) Response {
	var b strings.Builder
	b.WriteString(genericContent)

	action := ActionDocument
	switch {
	case containsAny(lower, urgentCues):
		b.WriteString("\n\n" + urgentCaution)
		action = ActionEmergency
	case containsAny(lower, severeCues):
		b.WriteString("\n\n" + severeCaution)
		action = ActionMonitor
	}

	b.WriteString("\n\n" + genericDisclaim)

	return Response{
		Content: b.String(),
		Action:  action,
	}
}

// IsEmergency reports whether the reply asks the user to seek care now
func IsEmergency(r Response) bool {
	return r.Action == ActionEmergency
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
