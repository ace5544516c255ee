package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding describes a candidate secret detected in a scan unit, including
// the secret type it was classified as, the rule that produced it, and its
// position. Line and Column are 1-indexed from the start of the unit.
// Findings are value objects: the engine creates them and never mutates
// them afterwards.
type Finding struct {
	SecretType string   `json:"secret_type"`
	Rule       string   `json:"rule"`
	Match      string   `json:"match"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`
	Path       string   `json:"path,omitempty"` // scan unit label, if the caller supplied one
}

// ScanUnit is one piece of text submitted for scanning: a file's content, a
// log chunk, a single line. The engine only reads it; ownership stays with
// the caller.
type ScanUnit struct {
	// Path is an optional caller-supplied label (usually a file path). It is
	// used for detector path scoping and echoed back on findings.
	Path string
	Data []byte
}
