package redact

import (
	"strings"
	"testing"

	"github.com/castlekit/castle/internal/types"
)

func TestMask(t *testing.T) {
	got := Mask("rew_0123456789abcdef")
	if got != "rew_01...[REDACTED]" {
		t.Fatalf("Mask()=%q", got)
	}
	if strings.Contains(got, "0123456789abcdef") {
		t.Fatal("masked value still contains the secret tail")
	}
	if Mask("short") != "[REDACTED]" {
		t.Fatalf("short values must be fully masked, got %q", Mask("short"))
	}
}

func TestFindingsCopies(t *testing.T) {
	in := []types.Finding{
		{SecretType: "Token", Rule: "r", Match: "rew_0123456789abcdef", Line: 3, Column: 7},
	}
	out := Findings(in)
	if out[0].Match == in[0].Match {
		t.Fatal("expected masked copy")
	}
	if in[0].Match != "rew_0123456789abcdef" {
		t.Fatal("input finding was mutated")
	}
	if out[0].Line != 3 || out[0].Column != 7 || out[0].Rule != "r" {
		t.Fatalf("non-secret fields must carry over: %+v", out[0])
	}
}
