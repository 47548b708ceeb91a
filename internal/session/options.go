package session

import (
	"runtime"
	"slices"

	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Mode selects whether a session may modify assets.
type Mode int

const (
	// ModeCheckOnly reports violations without fixing them.
	ModeCheckOnly Mode = iota
	// ModeAutoFix applies available fixes and rechecks them.
	ModeAutoFix
)

func (m Mode) String() string {
	if m == ModeAutoFix {
		return "auto-fix"
	}
	return "check-only"
}

// Options configure one session run.
type Options struct {
	Mode Mode
	// Threshold is the lowest severity that fails the result. Zero means
	// SeverityError.
	Threshold validator.Severity
	// Trigger is the event that started the session. Zero picks
	// TriggerValidate for check-only sessions and TriggerFix otherwise.
	Trigger rule.Trigger
	// Workers bounds how many assets are processed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// Exclusions suppress rules for matching assets.
	Exclusions []rule.Exclusion
	// Dirs restricts the session to assets under these paths. Assets
	// outside are skipped. Empty means every asset.
	Dirs []string
	// SkipGeneric skips assets of the generic kind.
	SkipGeneric bool
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = validator.SeverityError
	}
	if o.Trigger == 0 {
		o.Trigger = rule.TriggerValidate
		if o.Mode == ModeAutoFix {
			o.Trigger = rule.TriggerFix
		}
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// FixesAllowed reports whether the options permit modifying assets.
func (o Options) FixesAllowed() bool {
	o = o.withDefaults()
	return o.Mode == ModeAutoFix && !o.Trigger.DryRun()
}

func (o Options) inDirs(assetPath string) bool {
	return len(o.Dirs) == 0 || slices.ContainsFunc(o.Dirs, func(d string) bool { return rule.UnderDir(assetPath, d) })
}
