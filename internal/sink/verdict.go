package sink

import (
	"maps"
	"slices"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Verdict is the host's data-validation outcome for one asset.
type Verdict int

const (
	// NotValidated means no rule was run against the asset.
	NotValidated Verdict = iota
	// Valid means no unresolved violation meets the threshold.
	Valid
	// Invalid means at least one unresolved violation meets the threshold.
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "not-validated"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	for _, candidate := range []Verdict{NotValidated, Valid, Invalid} {
		if candidate.String() == string(text) {
			*v = candidate
			return nil
		}
	}
	return errors.Newf("unknown verdict %q", text)
}

// VerdictFor maps an asset result onto a verdict. Assets that were skipped,
// errored, never started or had no applicable rule are NotValidated.
func VerdictFor(a validator.AssetResult, threshold validator.Severity) Verdict {
	if a.State != validator.StateReported || a.RulesRun == 0 {
		return NotValidated
	}
	for _, rep := range a.Reports {
		if !rep.Resolved() && rep.Severity >= threshold {
			return Invalid
		}
	}
	return Valid
}

// Issues returns the unresolved reports that belong in data-validation
// results.
func Issues(a validator.AssetResult) []validator.Report {
	var out []validator.Report
	for _, rep := range a.Reports {
		if rep.Standard() && !rep.Resolved() {
			out = append(out, rep)
		}
	}
	return out
}

// Target receives per-asset data-validation outcomes.
type Target interface {
	Record(assetPath string, verdict Verdict, issues []validator.Report) error
}

// AssetVerdict is a recorded outcome.
type AssetVerdict struct {
	Verdict Verdict            `json:"verdict"`
	Issues  []validator.Report `json:"issues,omitempty"`
}

// VerdictTable is an in-memory Target holding the latest verdict per asset.
type VerdictTable struct {
	mu       sync.RWMutex
	verdicts map[string]AssetVerdict
}

// NewVerdictTable creates an empty table.
func NewVerdictTable() *VerdictTable {
	return &VerdictTable{verdicts: make(map[string]AssetVerdict)}
}

func (t *VerdictTable) Record(assetPath string, verdict Verdict, issues []validator.Report) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.verdicts[assetPath] = AssetVerdict{Verdict: verdict, Issues: slices.Clone(issues)}
	return nil
}

// Get returns the latest verdict for assetPath.
func (t *VerdictTable) Get(assetPath string) (AssetVerdict, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.verdicts[assetPath]
	return v, ok
}

// Paths returns the recorded asset paths, sorted.
func (t *VerdictTable) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.verdicts))
}
