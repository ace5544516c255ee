// Package redact masks matched secret values so findings can be logged or
// persisted without re-leaking them.
package redact

import "github.com/castlekit/castle/internal/types"

const keepPrefix = 6

// Mask hides the bulk of a secret, keeping a short identifying prefix so
// reports stay actionable.
func Mask(s string) string {
	if len(s) <= keepPrefix {
		return "[REDACTED]"
	}
	return s[:keepPrefix] + "...[REDACTED]"
}

// Findings returns a copy of the findings with every matched value masked.
// The inputs are left untouched.
func Findings(fs []types.Finding) []types.Finding {
	out := make([]types.Finding, len(fs))
	for i, f := range fs {
		out[i] = f
		out[i].Match = Mask(f.Match)
	}
	return out
}
