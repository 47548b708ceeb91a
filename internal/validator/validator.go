package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Severity represents the impact of a violation.
type Severity int

const (
	// SeverityInfo indicates an informational note.
	SeverityInfo Severity = iota + 1
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityError indicates a blocking violation.
	SeverityError
	// SeverityFatal indicates a violation that could not be evaluated safely,
	// such as a rule that failed while running.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a case-insensitive severity name.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return 0, errors.Newf("unknown severity %q (valid: info, warning, error, fatal)", s)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output uses names.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Report represents a single rule violation against one asset.
type Report struct {
	// RuleID is the identity of the rule that produced the report.
	RuleID string `json:"rule_id"`
	// AssetPath is the path of the offending asset.
	AssetPath string `json:"asset_path"`
	// Object names the offending sub-object, if any (e.g. a graph or emitter).
	Object string `json:"object,omitempty"`
	// Severity indicates the impact of the violation.
	Severity Severity `json:"severity"`
	// Message is a human-readable description of the problem.
	Message string `json:"message"`
	// Fixable is true when the rule offers an automated fix for this violation.
	Fixable bool `json:"fixable"`
	// FixApplied is true when a fix was committed for this violation.
	FixApplied bool `json:"fix_applied"`
	// Verified is true when a post-fix recheck confirmed the violation is gone.
	// A report with FixApplied and not Verified is unverified.
	Verified bool `json:"verified,omitempty"`
	// FixError holds the reason a fix was rolled back.
	FixError string `json:"fix_error,omitempty"`
}

// Resolved reports whether a verified fix removed the violation.
func (r Report) Resolved() bool {
	return r.FixApplied && r.Verified
}

// Unverified reports whether a fix was committed but the recheck still
// reproduced the violation.
func (r Report) Unverified() bool {
	return r.FixApplied && !r.Verified
}

// Standard reports whether the violation belongs in the host's native
// data-validation results. Informational notes stay in the message log only.
func (r Report) Standard() bool {
	return r.Severity >= SeverityWarning
}

// Error implements the error interface.
func (r Report) Error() string {
	var sb strings.Builder
	sb.WriteString(r.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(r.AssetPath)
	if r.Object != "" {
		sb.WriteString(" [")
		sb.WriteString(r.Object)
		sb.WriteString("]")
	}
	fmt.Fprintf(&sb, ": %s (%s)", r.Message, r.RuleID)
	return sb.String()
}
