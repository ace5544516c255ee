package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/castlekit/castle/internal/matcher"
	"github.com/castlekit/castle/internal/registry"
	"github.com/castlekit/castle/internal/types"
)

// Config controls post-match filtering. The zero value applies no filters.
type Config struct {
	MinConfidence float64
	EnableTypes   string // comma-separated secret types; empty enables all
	DisableTypes  string
}

// Engine runs a frozen registry over scan units. It holds no mutable state,
// so one Engine may serve concurrent Scan calls over distinct units.
type Engine struct {
	reg *registry.Registry
	cfg Config
}

func New(reg *registry.Registry) *Engine {
	return NewWithConfig(reg, Config{})
}

func NewWithConfig(reg *registry.Registry, cfg Config) *Engine {
	return &Engine{reg: reg, cfg: cfg}
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	DetectorsRun int
	RulesRun     int
	Candidates   int // accepted matches before dedup and filters
	Suppressed   int // candidates discarded by negative conditions
	Warnings     int // negative-condition evaluations that failed and were skipped
	Duration     time.Duration
}

// Scan classifies one unit and returns the ordered findings. It never fails
// once the registry has been built.
func (e *Engine) Scan(unit types.ScanUnit) []types.Finding {
	return e.ScanWithStats(unit).Findings
}

// ScanWithStats is Scan plus rule counts and timing.
func (e *Engine) ScanWithStats(unit types.ScanUnit) Result {
	var res Result
	started := time.Now()

	var raw []types.Finding
	for _, d := range e.reg.Detectors() {
		if !d.AppliesTo(unit.Path) {
			continue
		}
		res.DetectorsRun++
		for _, r := range d.Rules() {
			res.RulesRun++
			fs, st := matcher.MatchWithStats(r, unit)
			raw = append(raw, fs...)
			res.Suppressed += st.Suppressed
			res.Warnings += st.Warnings
		}
	}
	res.Candidates = len(raw)

	fs := dedupe(raw)
	fs = filterByConfidence(fs, e.cfg.MinConfidence)
	fs = filterByTypes(fs, e.cfg.EnableTypes, e.cfg.DisableTypes)
	sortFindings(fs)

	res.Findings = fs
	res.Duration = time.Since(started)
	return res
}

// dedupe collapses findings that share (secret type, match, line, column),
// keeping the first-encountered rule. Rules of different shapes can
// legitimately accept the identical span; callers should see one actionable
// finding, not one per rule.
func dedupe(findings []types.Finding) []types.Finding {
	seen := make(map[uint64]bool, len(findings))
	var result []types.Finding
	for _, f := range findings {
		key := fingerprint(f)
		if !seen[key] {
			seen[key] = true
			result = append(result, f)
		}
	}
	return result
}

func fingerprint(f types.Finding) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d:%d", f.SecretType, f.Match, f.Line, f.Column)
	return h.Sum64()
}

// sortFindings orders ascending by (line, column), ties broken by secret
// type, so repeated scans produce stable, diffable output.
func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		if fs[i].Column != fs[j].Column {
			return fs[i].Column < fs[j].Column
		}
		return fs[i].SecretType < fs[j].SecretType
	})
}

func filterByConfidence(fs []types.Finding, min float64) []types.Finding {
	if min <= 0 {
		return fs
	}
	var out []types.Finding
	for _, f := range fs {
		if f.Confidence >= min {
			out = append(out, f)
		}
	}
	return out
}

func filterByTypes(fs []types.Finding, enable, disable string) []types.Finding {
	if enable == "" && disable == "" {
		return fs
	}
	allowed := map[string]bool{}
	if enable != "" {
		for _, t := range strings.Split(enable, ",") {
			allowed[strings.TrimSpace(t)] = true
		}
	}
	blocked := map[string]bool{}
	if disable != "" {
		for _, t := range strings.Split(disable, ",") {
			blocked[strings.TrimSpace(t)] = true
		}
	}
	var out []types.Finding
	for _, f := range fs {
		if enable != "" && !allowed[f.SecretType] {
			continue
		}
		if disable != "" && blocked[f.SecretType] {
			continue
		}
		out = append(out, f)
	}
	return out
}
