package diagnosis

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category groups conditions by body system
type Category uint8

const (
	CategoryRespiratory Category = iota + 1
	CategoryCardiovascular
	CategoryNeurological
	CategoryGastrointestinal
	CategoryMusculoskeletal
	CategoryDermatological
	CategoryInfectious
	CategoryEndocrine
	CategoryMental
	CategoryOther
)

var categoryNames = map[Category]struct{ key, display string }{
	CategoryRespiratory:      {"respiratory", "Respiratory"},
	CategoryCardiovascular:   {"cardiovascular", "Cardiovascular"},
	CategoryNeurological:     {"neurological", "Neurological"},
	CategoryGastrointestinal: {"gastrointestinal", "Gastrointestinal"},
	CategoryMusculoskeletal:  {"musculoskeletal", "Musculoskeletal"},
	CategoryDermatological:   {"dermatological", "Dermatological"},
	CategoryInfectious:       {"infectious", "Infectious"},
	CategoryEndocrine:        {"endocrine", "Endocrine"},
	CategoryMental:           {"mental", "Mental Health"},
	CategoryOther:            {"other", "Other"},
}

// String returns the display name ("Mental Health", "Respiratory", ...)
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n.display
	}
	return "Unknown"
}

// Valid reports whether c is one of the declared categories
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory accepts either the key ("mental") or the display name ("Mental Health")
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c, n := range categoryNames {
		if strings.EqualFold(s, n.key) || strings.EqualFold(s, n.display) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) {
	n, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("invalid category %d", c)
	}
	return []byte(n.key), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	return c.UnmarshalText([]byte(value.Value))
}

// Severity is the expected seriousness of a condition
type Severity uint8

const (
	SeverityMild Severity = iota + 1
	SeverityModerate
	SeveritySevere
)

var severityNames = map[Severity]struct{ key, display string }{
	SeverityMild:     {"mild", "Mild"},
	SeverityModerate: {"moderate", "Moderate"},
	SeveritySevere:   {"severe", "Severe"},
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n.display
	}
	return "Unknown"
}

func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

// ParseSeverity accepts "mild", "Moderate", "SEVERE", ...
func ParseSeverity(s string) (Severity, error) {
	s = strings.TrimSpace(s)
	for sev, n := range severityNames {
		if strings.EqualFold(s, n.key) {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	n, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid severity %d", s)
	}
	return []byte(n.key), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	return s.UnmarshalText([]byte(value.Value))
}

// Condition is one catalog entry. Treat values as read-only: the slices are
// shared with the catalog they came from.
type Condition struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Category        Category `json:"category" yaml:"category"`
	CommonSymptoms  []string `json:"common_symptoms" yaml:"common_symptoms"`
	RareSymptoms    []string `json:"rare_symptoms" yaml:"rare_symptoms"`
	Severity        Severity `json:"severity" yaml:"severity"`
	Description     string   `json:"description" yaml:"description"`
	TypicalDuration string   `json:"typical_duration" yaml:"typical_duration"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// AllSymptoms returns common symptoms followed by rare ones
func (c Condition) AllSymptoms() []string {
	all := make([]string, 0, len(c.CommonSymptoms)+len(c.RareSymptoms))
	all = append(all, c.CommonSymptoms...)
	return append(all, c.RareSymptoms...)
}

func (c Condition) validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("condition %q: name is required", c.ID)
	case !c.Category.Valid():
		return fmt.Errorf("condition %q: category is required", c.Name)
	case !c.Severity.Valid():
		return fmt.Errorf("condition %q: severity is required", c.Name)
	case len(c.CommonSymptoms) == 0:
		return fmt.Errorf("condition %q: at least one common symptom is required", c.Name)
	case len(c.Recommendations) == 0:
		return fmt.Errorf("condition %q: at least one recommendation is required", c.Name)
	}
	return nil
}
