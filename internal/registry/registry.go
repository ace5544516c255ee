// Package registry holds the set of compiled detectors the engine runs.
// The intended discipline is build-then-freeze: register everything at
// startup, then share the registry read-only across concurrent scans.
package registry

import (
	"fmt"

	"github.com/castlekit/castle/internal/rules"
)

// DuplicateDetectorError reports a secret-type collision at registration.
type DuplicateDetectorError struct {
	SecretType string
}

func (e *DuplicateDetectorError) Error() string {
	return fmt.Sprintf("detector already registered for secret type %q", e.SecretType)
}

// Registry is an insertion-ordered collection of compiled detectors.
type Registry struct {
	order  []*rules.CompiledDetector
	byType map[string]*rules.CompiledDetector
}

func New() *Registry {
	return &Registry{byType: make(map[string]*rules.CompiledDetector)}
}

// Register compiles and adds a detector definition. It fails with
// *DuplicateDetectorError on a secret-type collision and *InvalidRuleError
// when any rule pattern does not compile; a failed Register leaves the
// registry unchanged.
func (r *Registry) Register(d rules.Detector) error {
	if _, ok := r.byType[d.SecretType]; ok {
		return &DuplicateDetectorError{SecretType: d.SecretType}
	}
	cd, err := rules.Compile(d)
	if err != nil {
		return err
	}
	r.order = append(r.order, cd)
	r.byType[cd.SecretType] = cd
	return nil
}

// Detectors returns the registered detectors in insertion order. The slice
// is a copy; the detectors themselves are shared and read-only.
func (r *Registry) Detectors() []*rules.CompiledDetector {
	out := make([]*rules.CompiledDetector, len(r.order))
	copy(out, r.order)
	return out
}

// SecretTypes returns the registered secret types in insertion order.
func (r *Registry) SecretTypes() []string {
	out := make([]string, 0, len(r.order))
	for _, d := range r.order {
		out = append(out, d.SecretType)
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }
