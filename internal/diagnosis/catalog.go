package diagnosis

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed conditions.yaml
var defaultCatalogYAML []byte

// Catalog is a fixed, versioned list of conditions. It is built once and
// only read afterwards, so one instance can be shared across goroutines.
type Catalog struct {
	version    string
	conditions []Condition
	byID       map[string]int
}

type catalogFile struct {
	Version    string      `yaml:"version"`
	Conditions []Condition `yaml:"conditions"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// NewCatalog validates the given conditions and freezes them into a catalog
func NewCatalog(version string, conditions []Condition) (*Catalog, error) {
	cat := &Catalog{
		version:    version,
		conditions: make([]Condition, 0, len(conditions)),
		byID:       make(map[string]int, len(conditions)),
	}

	for _, c := range conditions {
		if c.ID == "" {
			c.ID = slugify(c.Name)
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		if _, dup := cat.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate condition id %q", c.ID)
		}

		c.CommonSymptoms = cloneStrings(c.CommonSymptoms)
		c.RareSymptoms = cloneStrings(c.RareSymptoms)
		c.Recommendations = cloneStrings(c.Recommendations)

		cat.byID[c.ID] = len(cat.conditions)
		cat.conditions = append(cat.conditions, c)
	}

	if len(cat.conditions) == 0 {
		return nil, fmt.Errorf("catalog has no conditions")
	}

	return cat, nil
}

// LoadCatalog parses a YAML catalog document
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return NewCatalog(file.Version, file.Conditions)
}

// OpenCatalog loads a catalog file. An empty path means the built-in catalog.
func OpenCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the built-in catalog. The embedded data is part of
// the binary, so a decode failure is a programming error and panics.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		cat, err := LoadCatalog(bytes.NewReader(defaultCatalogYAML))
		if err != nil {
			panic(fmt.Sprintf("diagnosis: invalid embedded catalog: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Version identifies the catalog revision
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of conditions
func (c *Catalog) Len() int {
	return len(c.conditions)
}

// Conditions returns the conditions in catalog order
func (c *Catalog) Conditions() []Condition {
	out := make([]Condition, len(c.conditions))
	copy(out, c.conditions)
	return out
}

// Get looks a condition up by id
func (c *Catalog) Get(id string) (Condition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Condition{}, false
	}
	return c.conditions[i], true
}

func slugify(name string) string {
	return strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
