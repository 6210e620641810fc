// Package symptoms picks up how a user describes their symptoms (how bad,
// how often, since when) so history entries can be annotated.
package symptoms

import (
	"regexp"
	"strings"
)

// Descriptor holds the cues found in one message. Empty fields mean the
// message said nothing about them.
type Descriptor struct {
	Severity  string `json:"severity,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Onset     string `json:"onset,omitempty"`
}

type cue struct {
	label    string
	keywords []string
}

// checked in order, first hit wins
var severityCues = []cue{
	{"severe", []string{"severe", "really bad", "terrible", "excruciating", "unbearable", "intense", "extreme"}},
	{"moderate", []string{"moderate", "uncomfortable", "bothering", "pretty bad"}},
	{"mild", []string{"mild", "slight", "a little", "bit of"}},
}

var frequencyCues = []cue{
	{"constant", []string{"constant", "all the time", "always", "won't stop", "continuous"}},
	{"daily", []string{"daily", "every day", "everyday", "every morning", "every night"}},
	{"frequent", []string{"often", "frequently", "multiple times", "keeps coming back"}},
	{"occasional", []string{"sometimes", "occasionally", "now and then", "on and off"}},
	{"once", []string{"once", "one time", "just happened"}},
}

// onsetPatterns are ordered from most to least specific
var onsetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\s*(hours?|days?|weeks?|months?)\s*ago\b`),
	regexp.MustCompile(`\b(for|past|last)\s+(\d+|a|few|couple( of)?|several)\s*(hours?|days?|weeks?|months?)\b`),
	regexp.MustCompile(`\b(right now|just now|currently)\b`),
	regexp.MustCompile(`\b(today|this morning|this afternoon|this evening|tonight)\b`),
	regexp.MustCompile(`\b(yesterday|last night)\b`),
	regexp.MustCompile(`\b(this|last) week\b`),
	regexp.MustCompile(`\b(few|couple|several) days\b`),
	regexp.MustCompile(`\b(recently|lately)\b`),
}

// Describe extracts severity, frequency and onset cues from message
func Describe(message string) Descriptor {
	lower := strings.ToLower(message)

	d := Descriptor{
		Severity:  firstCue(lower, severityCues),
		Frequency: firstCue(lower, frequencyCues),
	}
	for _, p := range onsetPatterns {
		if m := p.FindString(lower); m != "" {
			d.Onset = m
			break
		}
	}
	return d
}

// IsZero reports whether no cue was found
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// String renders the cues for logs and the CLI, e.g. "severe - daily - since yesterday"
func (d Descriptor) String() string {
	var parts []string
	if d.Severity != "" {
		parts = append(parts, d.Severity)
	}
	if d.Frequency != "" {
		parts = append(parts, d.Frequency)
	}
	if d.Onset != "" {
		parts = append(parts, "since "+d.Onset)
	}
	return strings.Join(parts, " - ")
}

func firstCue(lower string, cues []cue) string {
	for _, c := range cues {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.label
			}
		}
	}
	return ""
}
