// Package matcher executes one compiled rule against one scan unit. It is
// pure with respect to engine state: it reads the rule and the unit and
// produces fresh findings.
package matcher

import (
	"bytes"
	"strings"

	"github.com/castlekit/castle/internal/rules"
	"github.com/castlekit/castle/internal/types"
)

// Stats counts what a rule pass discarded or degraded.
type Stats struct {
	Suppressed int // candidates discarded by a negative condition
	Warnings   int // negative-condition evaluations that failed and were skipped
}

// Match runs the rule over the unit line by line and returns every candidate
// span that survives the rule's negative conditions. Positions are 1-indexed
// (line, column-in-bytes); output is deterministic for identical input. The
// unit is never mutated and Match never fails on valid input.
func Match(r *rules.CompiledRule, unit types.ScanUnit) []types.Finding {
	fs, _ := MatchWithStats(r, unit)
	return fs
}

// MatchWithStats is Match plus suppression and warning counts.
//
// Lines are split by hand rather than with bufio.Scanner: scanner token
// limits would truncate units with oversized lines (minified bundles,
// embedded blobs) and silently drop everything after them.
func MatchWithStats(r *rules.CompiledRule, unit types.ScanUnit) ([]types.Finding, Stats) {
	var out []types.Finding
	var st Stats
	data := unit.Data
	line := 0
	for start := 0; start < len(data); {
		line++
		var t string
		if i := bytes.IndexByte(data[start:], '\n'); i < 0 {
			t = string(data[start:])
			start = len(data)
		} else {
			t = string(data[start : start+i])
			start += i + 1
		}
		t = strings.TrimSuffix(t, "\r")
		for _, loc := range r.FindSpans(t) {
			span := t[loc[0]:loc[1]]
			v := r.Evaluate(span, t)
			if v.Warned {
				st.Warnings++
			}
			if v.Suppressed {
				st.Suppressed++
				continue
			}
			out = append(out, types.Finding{
				SecretType: r.SecretType,
				Rule:       r.ID,
				Match:      span,
				Line:       line,
				Column:     loc[0] + 1,
				Severity:   r.Severity,
				Confidence: r.Confidence,
				Path:       unit.Path,
			})
		}
	}
	return out, st
}
