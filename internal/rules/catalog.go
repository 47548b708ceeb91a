package rules

import (
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
)

// base carries rule metadata for catalog rules.
type base struct {
	meta rule.Meta
}

func (b base) Meta() rule.Meta { return b.meta }

// Catalog returns the built-in rules in registration order.
func Catalog(s Settings) []rule.Rule {
	rules := []rule.Rule{
		NewNamingConvention(s.Conventions, s.NotifyMissingConvention),
		NewRemoveMetadataTags(s.RemoveMetadataTags),
		NewRequiredProperties(s.RequiredProperties),
		NewNoEmptyEventGraph(),
		NewFunctionMaxNodeCount(s.MaxFunctionNodes),
		NewDataOnlyBlueprint(s.DataOnlyParents),
		NewNiagaraCompileStatus(s.NiagaraErrorOnWarnings, s.NiagaraErrorOnUnknown),
		NewNiagaraDisabledEmitters(),
		NewMaterialTextureSampleLimit(s.MaxTextureSamples),
		NewTextureResolution(s.TextureConstraint, s.TextureDivisor, s.MaxTextureSize),
	}
	return append(rules, soundGraphRules()...)
}

// RegisterDefaults registers the catalog, skipping disabled rules and
// applying overrides keyed by rule ID.
func RegisterDefaults(reg *rule.Registry, s Settings, disabled []string, overrides map[string]rule.Overrides) error {
	skip := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}

	known := make(map[string]bool)
	for _, id := range SoundGraphRuleIDs {
		known[id] = true
	}
	for _, r := range Catalog(s) {
		id := r.Meta().ID
		known[id] = true
		if skip[id] {
			continue
		}
		if ov, ok := overrides[id]; ok {
			r = rule.WithOverrides(r, ov)
		}
		if err := reg.Register(r); err != nil {
			return err
		}
	}

	for id := range overrides {
		if !known[id] {
			return errors.Wrapf(errors.ErrInvalidConfig, "override for unknown rule %q", id)
		}
	}
	return nil
}
