package rule

import (
	"context"
	"slices"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Meta describes a rule.
type Meta struct {
	// ID is the stable, unique rule identity, e.g. "naming-convention".
	ID string
	// Description is a one-line summary for listings.
	Description string
	// Severity is the default severity of findings.
	Severity validator.Severity
	// Kinds are the asset kinds the rule applies to.
	Kinds []asset.Kind
	// Requires lists capabilities an asset must all carry.
	Requires []asset.Capability
	// ApplyOn restricts the rule to these triggers; empty means all.
	ApplyOn []Trigger
	// Matcher further restricts the rule to matching assets; nil matches all.
	Matcher Matcher
}

// AppliesToKind reports whether the rule is scoped to kind.
func (m Meta) AppliesToKind(kind asset.Kind) bool {
	return slices.Contains(m.Kinds, kind)
}

// AppliesOn reports whether the rule runs for the trigger.
func (m Meta) AppliesOn(t Trigger) bool {
	return len(m.ApplyOn) == 0 || slices.Contains(m.ApplyOn, t)
}

// AppliesTo reports whether the rule applies to the inspected asset: kind,
// required capabilities and matcher all have to agree.
func (m Meta) AppliesTo(c *inspect.Context) bool {
	if !m.AppliesToKind(c.Kind()) {
		return false
	}
	for _, capability := range m.Requires {
		if !c.Has(capability) {
			return false
		}
	}
	return m.Matcher == nil || m.Matcher.Match(c)
}

// Finding is one violation detected by a check.
type Finding struct {
	// Object is the sub-object path the finding refers to, if any.
	Object string
	// Severity overrides the rule's default severity when non-zero.
	Severity validator.Severity
	Message  string
	// Fixable marks findings the rule's Fixer can remediate. It is ignored
	// for rules without a Fixer.
	Fixable bool
}

// Rule is a named check over one asset.
//
// Check must not retain the context and must return the same findings for
// the same asset content.
type Rule interface {
	Meta() Meta
	Check(ctx context.Context, c *inspect.Context) ([]Finding, error)
}

// Fixer is implemented by rules that can remediate their findings.
//
// Fix applies the remediation for one report through the editor; c is the
// context the report was produced from. An error aborts the edit and leaves
// the asset unchanged.
type Fixer interface {
	Fix(ctx context.Context, c *inspect.Context, ed *inspect.Editor, report validator.Report) error
}

// AsFixer returns the Fixer implemented by r or by any rule it wraps.
func AsFixer(r Rule) (Fixer, bool) {
	for r != nil {
		if f, ok := r.(Fixer); ok {
			return f, true
		}
		u, ok := r.(interface{ Unwrap() Rule })
		if !ok {
			return nil, false
		}
		r = u.Unwrap()
	}
	return nil, false
}

// Overrides adjust a rule's metadata from configuration.
type Overrides struct {
	Severity validator.Severity
	ApplyOn  []Trigger
	Matcher  Matcher
}

type overridden struct {
	Rule
	meta Meta
}

func (o overridden) Meta() Meta   { return o.meta }
func (o overridden) Unwrap() Rule { return o.Rule }

// WithOverrides returns r with overridden metadata. Zero fields keep the
// rule's own values; a matcher is combined with the rule's own matcher.
func WithOverrides(r Rule, ov Overrides) Rule {
	meta := r.Meta()
	if ov.Severity != 0 {
		meta.Severity = ov.Severity
	}
	if len(ov.ApplyOn) > 0 {
		meta.ApplyOn = slices.Clone(ov.ApplyOn)
	}
	if ov.Matcher != nil {
		if meta.Matcher != nil {
			meta.Matcher = And(meta.Matcher, ov.Matcher)
		} else {
			meta.Matcher = ov.Matcher
		}
	}
	return overridden{Rule: r, meta: meta}
}

// Report converts a finding into a report for the given rule and asset.
// hasFixer tells whether the rule implements Fixer.
func Report(meta Meta, assetPath string, f Finding, hasFixer bool) validator.Report {
	sev := f.Severity
	if sev == 0 {
		sev = meta.Severity
	}
	return validator.Report{
		RuleID:    meta.ID,
		AssetPath: assetPath,
		Object:    f.Object,
		Severity:  sev,
		Message:   f.Message,
		Fixable:   hasFixer && f.Fixable,
	}
}
