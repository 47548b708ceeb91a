package validator

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// AssetResult holds the outcome for a single asset.
type AssetResult struct {
	// Path is the asset path.
	Path string `json:"path"`
	// FinalPath is set when a fix renamed the asset.
	FinalPath string `json:"final_path,omitempty"`
	// Kind is the asset kind name, when known.
	Kind string `json:"kind,omitempty"`
	// State is the lifecycle position reached.
	State AssetState `json:"state"`
	// History lists every state entered, in order, starting at pending.
	History []AssetState `json:"history,omitempty"`
	// Reason explains a skipped or errored state.
	Reason string `json:"reason,omitempty"`
	// RulesRun is the number of rules checked against the asset.
	RulesRun int `json:"rules_run"`
	// Reports are the violations found, in rule registration order.
	Reports []Report `json:"reports"`
}

// NewAssetResult creates a pending result for path.
func NewAssetResult(path string) *AssetResult {
	return &AssetResult{
		Path:    path,
		State:   StatePending,
		History: []AssetState{StatePending},
		Reports: make([]Report, 0),
	}
}

// Advance moves the asset to the next lifecycle state. Moving backwards,
// skipping a state or leaving a terminal state is rejected.
func (a *AssetResult) Advance(to AssetState) error {
	if !CanTransition(a.State, to) {
		return errors.Newf("asset %s: illegal transition %s -> %s", a.Path, a.State, to)
	}
	a.State = to
	a.History = append(a.History, to)
	return nil
}

// Counts aggregates report counts by severity.
type Counts struct {
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
	Fatal    int `json:"fatal"`
}

func (c *Counts) add(s Severity) {
	switch s {
	case SeverityInfo:
		c.Info++
	case SeverityWarning:
		c.Warnings++
	case SeverityError:
		c.Errors++
	case SeverityFatal:
		c.Fatal++
	}
}

// Total returns the number of counted reports.
func (c Counts) Total() int {
	return c.Info + c.Warnings + c.Errors + c.Fatal
}

// ValidationResult aggregates the asset results of one session.
type ValidationResult struct {
	// ID identifies the result so publishing is idempotent.
	ID string `json:"id"`
	// StartedAt is when the session started.
	StartedAt time.Time `json:"started_at"`
	// Duration is the wall time of the session.
	Duration time.Duration `json:"duration"`
	// Threshold is the lowest severity that fails the result.
	Threshold Severity `json:"threshold"`
	// Cancelled is true when the session stopped before all assets completed.
	Cancelled bool `json:"cancelled,omitempty"`
	// Assets holds one entry per requested asset.
	Assets []AssetResult `json:"assets"`
}

// NewResult creates an empty result with a fresh identity.
func NewResult(threshold Severity) *ValidationResult {
	if threshold == 0 {
		threshold = SeverityError
	}
	return &ValidationResult{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Threshold: threshold,
		Assets:    make([]AssetResult, 0),
	}
}

// Add appends an asset result.
func (r *ValidationResult) Add(a AssetResult) {
	r.Assets = append(r.Assets, a)
}

// Sort orders asset results by path. Per-asset report order is untouched.
func (r *ValidationResult) Sort() {
	slices.SortStableFunc(r.Assets, func(a, b AssetResult) int {
		return strings.Compare(a.Path, b.Path)
	})
}

// Reports returns every report across all assets.
func (r *ValidationResult) Reports() []Report {
	if r == nil {
		return nil
	}
	var out []Report
	for _, a := range r.Assets {
		out = append(out, a.Reports...)
	}
	return out
}

// Counts returns report counts by severity, including resolved reports.
func (r *ValidationResult) Counts() Counts {
	var c Counts
	for _, rep := range r.Reports() {
		c.add(rep.Severity)
	}
	return c
}

// Remaining returns counts of reports not resolved by a verified fix.
func (r *ValidationResult) Remaining() Counts {
	var c Counts
	for _, rep := range r.Reports() {
		if !rep.Resolved() {
			c.add(rep.Severity)
		}
	}
	return c
}

// Passed reports whether no unresolved report meets the threshold.
func (r *ValidationResult) Passed() bool {
	if r == nil {
		return true
	}
	for _, rep := range r.Reports() {
		if !rep.Resolved() && rep.Severity >= r.Threshold {
			return false
		}
	}
	return true
}

// FixApplied reports whether any fix was committed during the session.
func (r *ValidationResult) FixApplied() bool {
	for _, rep := range r.Reports() {
		if rep.FixApplied {
			return true
		}
	}
	return false
}

// InState returns the asset results that ended in state s.
func (r *ValidationResult) InState(s AssetState) []AssetResult {
	var out []AssetResult
	for _, a := range r.Assets {
		if a.State == s {
			out = append(out, a)
		}
	}
	return out
}

// Asset returns the result for path.
func (r *ValidationResult) Asset(path string) (AssetResult, bool) {
	for _, a := range r.Assets {
		if a.Path == path {
			return a, true
		}
	}
	return AssetResult{}, false
}
