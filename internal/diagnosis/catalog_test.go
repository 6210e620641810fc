package diagnosis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	require.NotNil(t, cat)
	assert.Equal(t, 36, cat.Len())
	assert.Equal(t, "2025.12.1", cat.Version())
	assert.Same(t, cat, DefaultCatalog(), "default catalog should be built once")

	for _, c := range cat.Conditions() {
		assert.NotEmpty(t, c.ID, c.Name)
		assert.True(t, c.Category.Valid(), c.Name)
		assert.True(t, c.Severity.Valid(), c.Name)
		assert.NotEmpty(t, c.CommonSymptoms, c.Name)
		assert.NotEmpty(t, c.Recommendations, c.Name)
		assert.NotEmpty(t, c.Description, c.Name)
		assert.NotEmpty(t, c.TypicalDuration, c.Name)
	}
}

func TestCatalogGet(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		id       string
		wantName string
		wantCat  Category
		wantSev  Severity
	}{
		{"common-cold", "Common Cold", CategoryRespiratory, SeverityMild},
		{"influenza-flu", "Influenza (Flu)", CategoryRespiratory, SeverityModerate},
		{"appendicitis", "Appendicitis", CategoryGastrointestinal, SeveritySevere},
		{"anxiety-disorder", "Anxiety Disorder", CategoryMental, SeverityModerate},
		{"covid-19", "COVID-19", CategoryInfectious, SeverityModerate},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, ok := cat.Get(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantCat, c.Category)
			assert.Equal(t, tt.wantSev, c.Severity)
		})
	}

	_, ok := cat.Get("not-a-condition")
	assert.False(t, ok)
}

func TestCatalogConditionsIsCopy(t *testing.T) {
	cat := DefaultCatalog()

	conditions := cat.Conditions()
	conditions[0].Name = "changed"

	assert.Equal(t, "Common Cold", cat.Conditions()[0].Name)
}

func TestNewCatalog(t *testing.T) {
	valid := func() Condition {
		return Condition{
			Name:            "Test Condition",
			Category:        CategoryOther,
			Severity:        SeverityMild,
			CommonSymptoms:  []string{"itch"},
			Recommendations: []string{"rest"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Condition)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Condition) {}},
		{name: "missing name", mutate: func(c *Condition) { c.Name = "  " }, wantErr: "name is required"},
		{name: "missing category", mutate: func(c *Condition) { c.Category = 0 }, wantErr: "category is required"},
		{name: "missing severity", mutate: func(c *Condition) { c.Severity = 0 }, wantErr: "severity is required"},
		{name: "no common symptoms", mutate: func(c *Condition) { c.CommonSymptoms = nil }, wantErr: "common symptom"},
		{name: "no recommendations", mutate: func(c *Condition) { c.Recommendations = nil }, wantErr: "recommendation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			cat, err := NewCatalog("test", []Condition{c})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, cat.Len())
		})
	}
}

func TestNewCatalog_SlugsAndDuplicates(t *testing.T) {
	c := Condition{
		Name:            "Irritable Bowel Syndrome (IBS)",
		Category:        CategoryGastrointestinal,
		Severity:        SeverityMild,
		CommonSymptoms:  []string{"bloating"},
		Recommendations: []string{"fiber"},
	}

	cat, err := NewCatalog("test", []Condition{c})
	require.NoError(t, err)
	_, ok := cat.Get("irritable-bowel-syndrome-ibs")
	assert.True(t, ok)

	_, err = NewCatalog("test", []Condition{c, c})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = NewCatalog("test", nil)
	assert.Error(t, err)
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	symptoms := []string{"itch"}
	cat, err := NewCatalog("test", []Condition{{
		Name:            "Rash",
		Category:        CategoryDermatological,
		Severity:        SeverityMild,
		CommonSymptoms:  symptoms,
		Recommendations: []string{"cream"},
	}})
	require.NoError(t, err)

	symptoms[0] = "changed"

	c, _ := cat.Get("rash")
	assert.Equal(t, []string{"itch"}, c.CommonSymptoms)
}

func TestLoadCatalog(t *testing.T) {
	doc := `
version: "v-test"
conditions:
  - name: "Mental Strain"
    category: "Mental Health"
    severity: Moderate
    common_symptoms: ["worry"]
    recommendations: ["talk to someone"]
`
	cat, err := LoadCatalog(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "v-test", cat.Version())
	c, ok := cat.Get("mental-strain")
	require.True(t, ok)
	assert.Equal(t, CategoryMental, c.Category)
	assert.Equal(t, SeverityModerate, c.Severity)
}

func TestOpenCatalog(t *testing.T) {
	cat, err := OpenCatalog("")
	require.NoError(t, err)
	assert.Same(t, DefaultCatalog(), cat)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
version: "from-file"
conditions:
  - name: "Itch"
    category: dermatological
    severity: mild
    common_symptoms: ["itching"]
    recommendations: ["moisturise"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cat, err = OpenCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cat.Version())
	assert.Equal(t, 1, cat.Len())

	_, err = OpenCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown category",
			doc: `conditions:
  - name: X
    category: cosmic
    severity: mild
    common_symptoms: [a]
    recommendations: [b]`,
		},
		{
			name: "unknown severity",
			doc: `conditions:
  - name: X
    category: other
    severity: lethal
    common_symptoms: [a]
    recommendations: [b]`,
		},
		{
			name: "unknown field",
			doc: `conditions:
  - name: X
    category: other
    severity: mild
    symptoms: [a]
    common_symptoms: [a]
    recommendations: [b]`,
		},
		{
			name: "not yaml",
			doc:  "{{{",
		},
		{
			name: "empty catalog",
			doc:  `version: "1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestCategoryAndSeverityText(t *testing.T) {
	assert.Equal(t, "Mental Health", CategoryMental.String())
	assert.Equal(t, "Unknown", Category(0).String())
	assert.Equal(t, "Severe", SeveritySevere.String())

	got, err := ParseCategory("mental health")
	require.NoError(t, err)
	assert.Equal(t, CategoryMental, got)

	_, err = ParseSeverity("")
	assert.Error(t, err)

	b, err := json.Marshal(struct {
		C Category `json:"c"`
		S Severity `json:"s"`
	}{CategoryMental, SeverityModerate})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"mental","s":"moderate"}`, string(b))

	_, err = json.Marshal(Severity(9))
	assert.Error(t, err)
}
