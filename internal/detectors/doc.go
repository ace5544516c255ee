// Package detectors holds the detector definitions that ship with the
// engine. Hosts may register these alongside their own definitions or skip
// them entirely.
package detectors
