// Package engine aggregates detector output for one scan unit: it runs every
// registered rule through the matcher, deduplicates and orders the findings,
// and applies post-filters. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
