package validator

import "github.com/thoreinstein/ruleranger/internal/errors"

// AssetState is the lifecycle position of one asset within a session.
type AssetState int

const (
	// StatePending means the asset has not been picked up yet.
	StatePending AssetState = iota
	// StateInspecting means the inspection context is being built.
	StateInspecting
	// StateChecked means every applicable rule check has run.
	StateChecked
	// StateFixing means fixes are being applied.
	StateFixing
	// StateRechecked means every applied fix has been rechecked.
	StateRechecked
	// StateReported is terminal: the asset's reports are final.
	StateReported
	// StateSkipped is terminal: no inspector adapter exists for the asset kind.
	StateSkipped
	// StateErrored is terminal: the asset could not be loaded or inspected.
	StateErrored
)

var stateNames = map[AssetState]string{
	StatePending:    "pending",
	StateInspecting: "inspecting",
	StateChecked:    "checked",
	StateFixing:     "fixing",
	StateRechecked:  "rechecked",
	StateReported:   "reported",
	StateSkipped:    "skipped",
	StateErrored:    "errored",
}

func (s AssetState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s AssetState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AssetState) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return errors.Newf("unknown asset state %q", text)
}

// Terminal reports whether no further transition is possible.
func (s AssetState) Terminal() bool {
	return s == StateReported || s == StateSkipped || s == StateErrored
}

var transitions = map[AssetState][]AssetState{
	StatePending:    {StateInspecting},
	StateInspecting: {StateChecked, StateSkipped, StateErrored},
	StateChecked:    {StateFixing, StateReported},
	StateFixing:     {StateRechecked},
	StateRechecked:  {StateReported},
}

// CanTransition reports whether from → to is a legal lifecycle step.
func CanTransition(from, to AssetState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
