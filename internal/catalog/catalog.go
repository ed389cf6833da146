package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

// Catalog is the static subject → ordered topics mapping the UI picks
// from. It is loaded once at startup and passed explicitly to whoever
// needs it; nothing mutates it after Load.
type Catalog struct {
	subjects map[string][]string
	names    []string
}

type catalogFile struct {
	Subjects []struct {
		Name   string   `yaml:"name"`
		Topics []string `yaml:"topics"`
	} `yaml:"subjects"`
}

// Load reads the catalog YAML at path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse builds a Catalog from raw YAML.
func Parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Subjects) == 0 {
		return nil, fmt.Errorf("catalog has no subjects")
	}

	subjects := make(map[string][]string, len(file.Subjects))
	names := make([]string, 0, len(file.Subjects))
	for _, s := range file.Subjects {
		if s.Name == "" {
			return nil, fmt.Errorf("catalog subject with empty name")
		}
		if len(s.Topics) == 0 {
			return nil, fmt.Errorf("catalog subject %q has no topics", s.Name)
		}
		if _, dup := subjects[s.Name]; dup {
			return nil, fmt.Errorf("catalog subject %q listed twice", s.Name)
		}
		topics := make([]string, len(s.Topics))
		copy(topics, s.Topics)
		subjects[s.Name] = topics
		names = append(names, s.Name)
	}
	sort.Strings(names)

	return &Catalog{subjects: subjects, names: names}, nil
}

// Subjects returns subject names in sorted order.
func (c *Catalog) Subjects() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Topics returns the ordered topics for subject.
func (c *Catalog) Topics(subject string) ([]string, error) {
	topics, ok := c.subjects[subject]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subject, pkgerrors.ErrNotFound)
	}
	out := make([]string, len(topics))
	copy(out, topics)
	return out, nil
}

// HasTopic reports whether subject/topic is a catalog entry. Matching is
// case-sensitive, same as the cache key identity.
func (c *Catalog) HasTopic(subject, topic string) bool {
	for _, t := range c.subjects[subject] {
		if t == topic {
			return true
		}
	}
	return false
}

// AsMap renders the catalog in the wire shape of GET /subjects.
func (c *Catalog) AsMap() map[string][]string {
	out := make(map[string][]string, len(c.subjects))
	for name, topics := range c.subjects {
		cp := make([]string, len(topics))
		copy(cp, topics)
		out[name] = cp
	}
	return out
}
