package core

import (
	"github.com/castlekit/castle/internal/config"
	"github.com/castlekit/castle/internal/detectors"
	"github.com/castlekit/castle/internal/engine"
	"github.com/castlekit/castle/internal/redact"
	"github.com/castlekit/castle/internal/registry"
	"github.com/castlekit/castle/internal/rules"
	"github.com/castlekit/castle/internal/types"
)

// Re-export selected internal types as a stable public API surface. These
// are type aliases so hosts can depend on a stable path; they can be
// replaced with decoupled structs later without breaking callers.
type (
	Finding  = types.Finding
	ScanUnit = types.ScanUnit
	Severity = types.Severity
	Rule     = rules.Rule
	Detector = rules.Detector
	Config   = engine.Config
	Engine   = engine.Engine
	Result   = engine.Result
)

// Error types hosts may want to branch on with errors.As.
type (
	InvalidRuleError       = rules.InvalidRuleError
	DuplicateDetectorError = registry.DuplicateDetectorError
)

// NewEngine compiles and registers the given detector definitions and
// returns a ready engine. With no definitions it loads the builtin
// Castle/OpenClaw detector set. Registration failures surface here, before
// any scanning is possible.
func NewEngine(defs ...Detector) (*Engine, error) {
	return NewEngineWithConfig(Config{}, defs...)
}

// NewEngineWithConfig is NewEngine with post-match filter configuration.
func NewEngineWithConfig(cfg Config, defs ...Detector) (*Engine, error) {
	if len(defs) == 0 {
		defs = detectors.Builtin()
	}
	reg := registry.New()
	for _, d := range defs {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return engine.NewWithConfig(reg, cfg), nil
}

// Scan is a one-shot entrypoint for hosts that do not hold an engine:
// builtin detectors, default config.
func Scan(unit ScanUnit) ([]Finding, error) {
	eng, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return eng.Scan(unit), nil
}

// DefaultDetectors returns the builtin detector definitions.
func DefaultDetectors() []Detector { return detectors.Builtin() }

// DetectorIDs returns the rule identifiers of the builtin detectors. This is
// exposed for convenience to avoid importing internals directly.
func DetectorIDs() []string { return detectors.IDs() }

// RedactFindings returns a copy of the findings with matched values masked,
// suitable for logs and audit trails.
func RedactFindings(fs []Finding) []Finding { return redact.Findings(fs) }

// LoadRuleset reads detector definitions from a YAML ruleset file. Patterns
// are validated at registration, not at load time, so a bad ruleset fails
// when it is handed to NewEngine.
func LoadRuleset(path string) ([]Detector, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Definitions(), nil
}
