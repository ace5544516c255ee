package core

import (
	"encoding/json"
	"io"
)

// MarshalFindings writes findings to w as indented JSON, the shape hosts
// ingest for baselines and pipelines. Matched values are written verbatim;
// use MarshalFindingsRedacted when the output may end up somewhere secrets
// must not.
func MarshalFindings(w io.Writer, findings []Finding) error {
	return encodeFindings(w, findings)
}

// MarshalFindingsRedacted is MarshalFindings with every matched value
// masked, for logs, tickets, and audit trails.
func MarshalFindingsRedacted(w io.Writer, findings []Finding) error {
	return encodeFindings(w, RedactFindings(findings))
}

func encodeFindings(w io.Writer, findings []Finding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings reads findings JSON produced by MarshalFindings.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
