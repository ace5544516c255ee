package rules

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/castlekit/castle/internal/types"
)

// maxPatternLen bounds pattern size before compilation. The regexp package
// matches in linear time, so this is a memory guard rather than a
// backtracking guard.
const maxPatternLen = 4096

// InvalidRuleError reports a rule whose pattern failed to compile or
// validate. It is always raised at registration time, never mid-scan.
type InvalidRuleError struct {
	SecretType string
	Rule       string
	Err        error
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule %q in detector %q: %v", e.Rule, e.SecretType, e.Err)
}

func (e *InvalidRuleError) Unwrap() error { return e.Err }

// CompiledDetector is the immutable, scan-ready form of a Detector. Build it
// once via Compile and treat it as read-only afterwards; with that
// discipline it is safe to share across goroutines.
type CompiledDetector struct {
	SecretType string

	rules    []*CompiledRule
	includes []string
	excludes []string
}

// Rules returns the detector's compiled rules in declaration order.
func (d *CompiledDetector) Rules() []*CompiledRule { return d.rules }

// AppliesTo reports whether the detector should run for a unit carrying the
// given label. Unlabeled units always match.
func (d *CompiledDetector) AppliesTo(path string) bool {
	if path == "" {
		return true
	}
	p := strings.ReplaceAll(path, "\\", "/")
	if len(d.includes) > 0 && !matchAnyGlob(p, d.includes) {
		return false
	}
	return !matchAnyGlob(p, d.excludes)
}

func matchAnyGlob(path string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}

// CompiledRule pairs a rule definition with its compiled patterns.
type CompiledRule struct {
	Rule
	SecretType string

	re         *regexp.Regexp
	excludeRes []*regexp.Regexp
	substrings []string // pre-lowered
	hosts      map[string]bool
}

// FindSpans returns every non-overlapping candidate span in the line as
// [start, end) byte offsets, leftmost-longest.
func (r *CompiledRule) FindSpans(line string) [][]int {
	return r.re.FindAllStringIndex(line, -1)
}

// Verdict is the outcome of evaluating a rule's negative conditions against
// one candidate span.
type Verdict struct {
	Suppressed bool
	Warned     bool // a condition failed to evaluate and was skipped
}

// Evaluate applies every negative condition to the candidate span. A
// condition whose evaluation fails is treated as not satisfied: the
// candidate is kept, the failure is logged as a warning and reported in the
// verdict, favoring a reviewable false positive over a silently dropped
// true positive.
func (r *CompiledRule) Evaluate(span, line string) Verdict {
	if r.MinLength > 0 && len(span) < r.MinLength {
		return Verdict{Suppressed: true}
	}
	if r.MaxLength > 0 && len(span) > r.MaxLength {
		return Verdict{Suppressed: true}
	}
	if len(r.substrings) > 0 {
		lower := strings.ToLower(line)
		for _, s := range r.substrings {
			if strings.Contains(lower, s) {
				return Verdict{Suppressed: true}
			}
		}
	}
	for _, re := range r.excludeRes {
		if re.MatchString(span) {
			return Verdict{Suppressed: true}
		}
	}
	if len(r.hosts) > 0 {
		hit, err := r.hostExcluded(span)
		if err != nil {
			log.Warn().Err(err).Str("rule", r.ID).Msg("host exclusion check failed, keeping candidate")
			return Verdict{Warned: true}
		}
		if hit {
			return Verdict{Suppressed: true}
		}
	}
	return Verdict{}
}

// Suppressed reports whether any negative condition holds for the candidate
// span.
func (r *CompiledRule) Suppressed(span, line string) bool {
	return r.Evaluate(span, line).Suppressed
}

func (r *CompiledRule) hostExcluded(span string) (bool, error) {
	u, err := url.Parse(span)
	if err != nil {
		return false, err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false, nil
	}
	return r.hosts[host], nil
}

// Compile validates and compiles a detector definition. Every failure is an
// *InvalidRuleError so configuration problems surface before any scanning
// work begins.
func Compile(d Detector) (*CompiledDetector, error) {
	if strings.TrimSpace(d.SecretType) == "" {
		return nil, &InvalidRuleError{SecretType: d.SecretType, Err: errors.New("secret type must not be empty")}
	}
	if len(d.Rules) == 0 {
		return nil, &InvalidRuleError{SecretType: d.SecretType, Err: errors.New("detector has no rules")}
	}
	for _, g := range append(append([]string{}, d.IncludePaths...), d.ExcludePaths...) {
		if !doublestar.ValidatePattern(g) {
			return nil, &InvalidRuleError{SecretType: d.SecretType, Rule: "path_scope", Err: fmt.Errorf("bad glob %q", g)}
		}
	}
	cd := &CompiledDetector{
		SecretType: d.SecretType,
		includes:   d.IncludePaths,
		excludes:   d.ExcludePaths,
	}
	for _, r := range d.Rules {
		cr, err := compileRule(d.SecretType, r)
		if err != nil {
			return nil, err
		}
		cd.rules = append(cd.rules, cr)
	}
	return cd, nil
}

func compileRule(secretType string, r Rule) (*CompiledRule, error) {
	fail := func(err error) (*CompiledRule, error) {
		return nil, &InvalidRuleError{SecretType: secretType, Rule: r.ID, Err: err}
	}
	if strings.TrimSpace(r.ID) == "" {
		return fail(errors.New("rule id must not be empty"))
	}
	if r.Pattern == "" {
		return fail(errors.New("empty pattern"))
	}
	if len(r.Pattern) > maxPatternLen {
		return fail(fmt.Errorf("pattern exceeds %d bytes", maxPatternLen))
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fail(err)
	}
	// Leftmost-longest matching, so a 40-char token is never reported as its
	// first 32 characters.
	re.Longest()

	cr := &CompiledRule{Rule: applyDefaults(r), SecretType: secretType, re: re}
	for _, p := range r.ExcludePatterns {
		xre, err := regexp.Compile(p)
		if err != nil {
			return fail(fmt.Errorf("exclude pattern %q: %w", p, err))
		}
		cr.excludeRes = append(cr.excludeRes, xre)
	}
	for _, s := range r.ExcludeSubstrings {
		cr.substrings = append(cr.substrings, strings.ToLower(s))
	}
	if len(r.ExcludeHosts) > 0 {
		cr.hosts = make(map[string]bool, len(r.ExcludeHosts))
		for _, h := range r.ExcludeHosts {
			cr.hosts[strings.ToLower(h)] = true
		}
	}
	return cr, nil
}

func applyDefaults(r Rule) Rule {
	if r.Severity == "" {
		r.Severity = types.SevMed
	}
	if r.Confidence == 0 {
		r.Confidence = 0.7
	}
	return r
}
