// Package privacy strips personal data from chat messages before they reach
// logs.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxLogRunes = 200

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// 555-123-4567, (555) 123-4567, +1 555 123 4567, 555-1234
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`)

	ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)

	medicalIDRegex = regexp.MustCompile(`(?i)\b(MRN|Medical Record|Patient ID|Insurance ID)[-:#\s]*[A-Z0-9]{6,}\b`)

	birthDateRegex = regexp.MustCompile(`(?i)\b(DOB|born on|date of birth)[-:\s]*\d{1,4}[/.-]\d{1,2}[/.-]\d{1,4}\b`)
)

// order matters: SSNs and cards would otherwise be eaten by the phone pattern
var redactions = []struct {
	re          *regexp.Regexp
	placeholder string
}{
	{emailRegex, "[EMAIL]"},
	{medicalIDRegex, "[MEDICAL_ID]"},
	{birthDateRegex, "[DOB]"},
	{ssnRegex, "[SSN]"},
	{creditCardRegex, "[CARD]"},
	{phoneRegex, "[PHONE]"},
}

// Redact replaces personal data in text with placeholders. Symptom text,
// durations and temperatures are left alone.
func Redact(text string) string {
	for _, r := range redactions {
		text = r.re.ReplaceAllString(text, r.placeholder)
	}
	return text
}

// ForLog redacts text and truncates it for a log line
func ForLog(text string) string {
	redacted := strings.Join(strings.Fields(Redact(text)), " ")

	if utf8.RuneCountInString(redacted) <= maxLogRunes {
		return redacted
	}
	runes := []rune(redacted)
	return string(runes[:maxLogRunes-3]) + "..."
}

// ContainsPII reports whether any redaction would apply
func ContainsPII(text string) bool {
	for _, r := range redactions {
		if r.re.MatchString(text) {
			return true
		}
	}
	return false
}

// UserTag is a stable pseudonym for a user id, safe to log
func UserTag(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return "user_" + hex.EncodeToString(sum[:4])
}
