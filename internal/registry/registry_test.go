package registry

import (
	"errors"
	"testing"

	"github.com/castlekit/castle/internal/rules"
)

func detector(secretType, ruleID, pattern string) rules.Detector {
	return rules.Detector{
		SecretType: secretType,
		Rules:      []rules.Rule{{ID: ruleID, Pattern: pattern}},
	}
}

func TestRegisterOrder(t *testing.T) {
	r := New()
	for _, d := range []rules.Detector{
		detector("B Secret", "b", `b[0-9]+`),
		detector("A Secret", "a", `a[0-9]+`),
		detector("C Secret", "c", `c[0-9]+`),
	} {
		if err := r.Register(d); err != nil {
			t.Fatal(err)
		}
	}
	got := r.SecretTypes()
	want := []string{"B Secret", "A Secret", "C Secret"}
	if len(got) != len(want) {
		t.Fatalf("SecretTypes()=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order not preserved: got %v want %v", got, want)
		}
	}
	if r.Len() != 3 {
		t.Fatalf("Len()=%d want 3", r.Len())
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := New()
	if err := r.Register(detector("A Secret", "a", `a[0-9]+`)); err != nil {
		t.Fatal(err)
	}
	err := r.Register(detector("A Secret", "a2", `x[0-9]+`))
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	var dup *DuplicateDetectorError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateDetectorError, got %T: %v", err, err)
	}
	if dup.SecretType != "A Secret" {
		t.Fatalf("SecretType=%q want %q", dup.SecretType, "A Secret")
	}
	if r.Len() != 1 {
		t.Fatalf("failed Register mutated the registry: Len()=%d", r.Len())
	}
}

func TestRegisterInvalidRule(t *testing.T) {
	r := New()
	err := r.Register(detector("A Secret", "a", `([`))
	if err == nil {
		t.Fatal("expected malformed pattern to fail registration")
	}
	var ire *rules.InvalidRuleError
	if !errors.As(err, &ire) {
		t.Fatalf("expected *InvalidRuleError, got %T: %v", err, err)
	}
	if r.Len() != 0 {
		t.Fatalf("failed Register mutated the registry: Len()=%d", r.Len())
	}
}

func TestDetectorsReturnsCopy(t *testing.T) {
	r := New()
	if err := r.Register(detector("A Secret", "a", `a[0-9]+`)); err != nil {
		t.Fatal(err)
	}
	ds := r.Detectors()
	ds[0] = nil
	if r.Detectors()[0] == nil {
		t.Fatal("Detectors() must return a copy of the backing slice")
	}
}
