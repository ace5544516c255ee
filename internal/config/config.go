package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/castlekit/castle/internal/rules"
	"github.com/castlekit/castle/internal/types"
)

// File is the on-disk YAML ruleset shape.
type File struct {
	Detectors []DetectorConfig `yaml:"detectors"`
}

// DetectorConfig declares one detector and its rules.
type DetectorConfig struct {
	SecretType   string       `yaml:"secret_type"`
	IncludePaths []string     `yaml:"include_paths"`
	ExcludePaths []string     `yaml:"exclude_paths"`
	Rules        []RuleConfig `yaml:"rules"`
}

// RuleConfig declares one rule: a positive pattern plus negative conditions.
// Pattern validity is not checked here; registration compiles the rules and
// rejects bad ones before any scanning starts.
type RuleConfig struct {
	ID                string   `yaml:"id"`
	Pattern           string   `yaml:"pattern"`
	ExcludeSubstrings []string `yaml:"exclude_substrings"`
	ExcludePatterns   []string `yaml:"exclude_patterns"`
	ExcludeHosts      []string `yaml:"exclude_hosts"`
	MinLength         int      `yaml:"min_length"`
	MaxLength         int      `yaml:"max_length"`
	Severity          string   `yaml:"severity"`
	Confidence        float64  `yaml:"confidence"`
}

// Parse decodes a YAML ruleset.
func Parse(b []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, err
	}
	return f, nil
}

// LoadFile reads a YAML ruleset from the provided path.
func LoadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Parse(b)
}

// LoadLocal searches for a repo-local ruleset in the given root. It supports
// .castle.yml/.yaml and castle.yml/.yaml.
func LoadLocal(root string) (File, error) {
	for _, name := range []string{".castle.yml", ".castle.yaml", "castle.yml", "castle.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return File{}, errors.New("no local ruleset")
}

// Definitions converts the loaded file into detector definitions ready for
// registration.
func (f File) Definitions() []rules.Detector {
	out := make([]rules.Detector, 0, len(f.Detectors))
	for _, dc := range f.Detectors {
		d := rules.Detector{
			SecretType:   dc.SecretType,
			IncludePaths: dc.IncludePaths,
			ExcludePaths: dc.ExcludePaths,
		}
		for _, rc := range dc.Rules {
			d.Rules = append(d.Rules, rules.Rule{
				ID:                rc.ID,
				Pattern:           rc.Pattern,
				ExcludeSubstrings: rc.ExcludeSubstrings,
				ExcludePatterns:   rc.ExcludePatterns,
				ExcludeHosts:      rc.ExcludeHosts,
				MinLength:         rc.MinLength,
				MaxLength:         rc.MaxLength,
				Severity:          types.Severity(rc.Severity),
				Confidence:        rc.Confidence,
			})
		}
		out = append(out, d)
	}
	return out
}
