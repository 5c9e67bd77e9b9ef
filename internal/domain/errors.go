package domain

import "fmt"

// DiscoveryError indicates invalid feature paths or an empty unit set.
// It is fatal and reported before any unit runs.
type DiscoveryError struct {
	Path   string // Offending path, empty when the whole set is the problem
	Reason string
}

func (e *DiscoveryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("discovery: %s", e.Reason)
	}
	return fmt.Sprintf("discovery: %q %s", e.Path, e.Reason)
}

// ConfigError indicates invalid configuration (worker count, timeout, tags).
// It is fatal and reported before any unit runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}
