// Package core provides a small, stable facade over the Castle detection
// engine for host frameworks. It deliberately re-exports a narrow API
// surface (register detectors, scan units, marshal findings) so hosts can
// depend on a stable import path without reaching into internal packages.
//
// Example:
//
//	eng, err := core.NewEngine()
//	if err != nil { /* handle */ }
//	findings := eng.Scan(core.ScanUnit{Path: "deploy.env", Data: content})
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
