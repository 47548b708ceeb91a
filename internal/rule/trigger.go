package rule

import (
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Trigger is the event that started a validation session.
type Trigger int

const (
	TriggerImport Trigger = iota + 1
	TriggerReimport
	TriggerValidate
	TriggerSave
	TriggerReport
	TriggerFix
)

var triggerNames = map[Trigger]string{
	TriggerImport:   "import",
	TriggerReimport: "reimport",
	TriggerValidate: "validate",
	TriggerSave:     "save",
	TriggerReport:   "report",
	TriggerFix:      "fix",
}

// Triggers returns every trigger in declaration order.
func Triggers() []Trigger {
	return []Trigger{TriggerImport, TriggerReimport, TriggerValidate, TriggerSave, TriggerReport, TriggerFix}
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "unknown"
}

// DryRun reports whether sessions started by this trigger must not modify
// assets. Only save, import, reimport and fix may apply fixes.
func (t Trigger) DryRun() bool {
	switch t {
	case TriggerSave, TriggerImport, TriggerReimport, TriggerFix:
		return false
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (t Trigger) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Trigger) UnmarshalText(text []byte) error {
	parsed, err := ParseTrigger(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTrigger converts a case-insensitive trigger name.
func ParseTrigger(s string) (Trigger, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Triggers() {
		if triggerNames[t] == name {
			return t, nil
		}
	}
	names := make([]string, 0, len(triggerNames))
	for _, t := range Triggers() {
		names = append(names, t.String())
	}
	return 0, errors.Newf("unknown trigger %q (valid: %s)", s, strings.Join(names, ", "))
}

// ParseTriggers converts a list of trigger names.
func ParseTriggers(names []string) ([]Trigger, error) {
	out := make([]Trigger, 0, len(names))
	for _, n := range names {
		t, err := ParseTrigger(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}
