package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is the default severity of every ordering rule.
	SevInfo Severity = iota
	// SevWarning is for diagnostics that should draw attention.
	SevWarning
	// SevError is for diagnostics that should fail a build.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseLevel parses a rule level from configuration: "off", "info",
// "warning" or "error". A rule set to "off" reports enabled false.
func ParseLevel(s string) (sev Severity, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return SevInfo, false, nil
	case "info", "suggestion":
		return SevInfo, true, nil
	case "warning", "warn":
		return SevWarning, true, nil
	case "error":
		return SevError, true, nil
	}
	return SevInfo, false, fmt.Errorf("unknown rule level %q", s)
}
