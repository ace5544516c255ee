package rules

import "github.com/castlekit/castle/internal/types"

// Rule is one declarative matching predicate: a positive pattern plus zero
// or more negative conditions that suppress a candidate span after it has
// matched. The regexp engine has no lookahead, so exclusions an upstream
// ruleset would express as (?!...) live here as post-match checks.
type Rule struct {
	ID      string
	Pattern string

	// Negative conditions, all optional. A candidate span is discarded when
	// any of them holds.
	ExcludeSubstrings []string // case-insensitive substrings of the surrounding line
	ExcludePatterns   []string // regexes evaluated against the matched span
	ExcludeHosts      []string // for URL-shaped rules: suppress matches whose host is listed

	// Length bounds on the matched span; zero means unbounded.
	MinLength int
	MaxLength int

	Severity   types.Severity
	Confidence float64
}

// Detector is a named, ordered collection of rules sharing one secret type.
// SecretType must be non-empty and is unique within a registry.
type Detector struct {
	SecretType string
	Rules      []Rule

	// Optional doublestar globs evaluated against the ScanUnit label. With
	// no include globs every unit is eligible; exclude globs are subtracted
	// last.
	IncludePaths []string
	ExcludePaths []string
}

// LoopbackHosts is the default suppression list for URL-shaped rules that
// should only fire on remote endpoints.
func LoopbackHosts() []string {
	return []string{"localhost", "127.0.0.1", "0.0.0.0"}
}
