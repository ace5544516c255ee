// Package config loads detector rulesets from YAML files so hosts can extend
// the registry without recompiling. It is internal; host code maps loaded
// definitions into the registry via pkg/core.
package config
