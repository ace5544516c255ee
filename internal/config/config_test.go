package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlekit/castle/internal/registry"
	"github.com/castlekit/castle/internal/rules"
	"github.com/castlekit/castle/internal/types"
)

const sampleRuleset = `
detectors:
  - secret_type: "Acme API Key"
    include_paths: ["**/*.env", "**/*.yaml"]
    rules:
      - id: acme_key
        pattern: "acme_[a-f0-9]{24,}"
        severity: high
        confidence: 0.9
      - id: acme_url
        pattern: "https://[A-Za-z0-9][A-Za-z0-9.-]+"
        exclude_hosts: ["localhost", "127.0.0.1"]
        exclude_substrings: ["example"]
        min_length: 12
`

func TestParseAndDefinitions(t *testing.T) {
	f, err := Parse([]byte(sampleRuleset))
	require.NoError(t, err)
	defs := f.Definitions()
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, "Acme API Key", d.SecretType)
	assert.Equal(t, []string{"**/*.env", "**/*.yaml"}, d.IncludePaths)
	require.Len(t, d.Rules, 2)
	assert.Equal(t, "acme_key", d.Rules[0].ID)
	assert.Equal(t, types.SevHigh, d.Rules[0].Severity)
	assert.Equal(t, 0.9, d.Rules[0].Confidence)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, d.Rules[1].ExcludeHosts)
	assert.Equal(t, 12, d.Rules[1].MinLength)

	// Loaded definitions must compile and register cleanly.
	reg := registry.New()
	for _, def := range defs {
		require.NoError(t, reg.Register(def))
	}
}

func TestBadPatternFailsAtRegistration(t *testing.T) {
	f, err := Parse([]byte(`
detectors:
  - secret_type: "Broken"
    rules:
      - id: broken
        pattern: "(["
`))
	require.NoError(t, err, "loading does not compile patterns")

	reg := registry.New()
	regErr := reg.Register(f.Definitions()[0])
	require.Error(t, regErr)
	var ire *rules.InvalidRuleError
	assert.True(t, errors.As(regErr, &ire))
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("detectors: [unclosed"))
	assert.Error(t, err)
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".castle.yml"), []byte(sampleRuleset), 0o644))

	f, err := LoadLocal(dir)
	require.NoError(t, err)
	assert.Len(t, f.Detectors, 1)

	_, err = LoadLocal(t.TempDir())
	assert.Error(t, err)
}
