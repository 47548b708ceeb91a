package engine

import (
	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/rules"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Settings converts the rules section of cfg into catalog settings. Unset
// limits keep the catalog defaults; configured conventions replace the
// built-in ones.
func Settings(cfg *config.Config) (rules.Settings, error) {
	s := rules.DefaultSettings()
	rc := cfg.Rules

	if len(rc.Naming.Conventions) > 0 {
		convs := make([]rules.Convention, 0, len(rc.Naming.Conventions))
		for i, cc := range rc.Naming.Conventions {
			kind, err := asset.ParseKind(cc.Kind)
			if err != nil {
				return s, errors.Mark(errors.Wrapf(err, "rules.naming.conventions[%d]", i), errors.ErrInvalidConfig)
			}
			convs = append(convs, rules.Convention{
				Kind:       kind,
				Class:      cc.Class,
				Capability: asset.Capability(cc.Capability),
				Variant:    cc.Variant,
				Prefix:     cc.Prefix,
				Suffix:     cc.Suffix,
			})
		}
		s.Conventions = convs
	}
	s.NotifyMissingConvention = rc.Naming.NotifyMissing
	s.RemoveMetadataTags = rc.Metadata.RemoveTags

	if len(rc.RequiredProperties) > 0 {
		s.RequiredProperties = make(map[string][]string, len(rc.RequiredProperties))
		for _, rp := range rc.RequiredProperties {
			s.RequiredProperties[rp.Class] = append(s.RequiredProperties[rp.Class], rp.Properties...)
		}
	}

	if rc.Blueprint.MaxFunctionNodes > 0 {
		s.MaxFunctionNodes = rc.Blueprint.MaxFunctionNodes
	}
	s.DataOnlyParents = rc.Blueprint.DataOnlyParents

	if rc.Material.MaxTextureSamples > 0 {
		s.MaxTextureSamples = rc.Material.MaxTextureSamples
	}
	if rc.Texture.Constraint != "" {
		s.TextureConstraint = rules.TextureConstraint(rc.Texture.Constraint)
	}
	if rc.Texture.Divisor > 0 {
		s.TextureDivisor = rc.Texture.Divisor
	}
	s.MaxTextureSize = rc.Texture.MaxSize

	s.NiagaraErrorOnWarnings = rc.Niagara.ErrorOnWarnings
	s.NiagaraErrorOnUnknown = rc.Niagara.ErrorOnUnknown
	return s, nil
}

// Overrides collects the per-rule severity, trigger and matcher overrides
// of cfg.
func Overrides(cfg *config.Config) (map[string]rule.Overrides, error) {
	out := make(map[string]rule.Overrides)

	for id, name := range cfg.Rules.Severity {
		sev, err := validator.ParseSeverity(name)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "rules.severity.%s", id), errors.ErrInvalidConfig)
		}
		ov := out[id]
		ov.Severity = sev
		out[id] = ov
	}

	for id, names := range cfg.Rules.ApplyOn {
		triggers, err := rule.ParseTriggers(names)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "rules.apply_on.%s", id), errors.ErrInvalidConfig)
		}
		ov := out[id]
		ov.ApplyOn = triggers
		out[id] = ov
	}

	for id, mc := range cfg.Rules.Match {
		m, err := Matcher(mc)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "rules.match.%s", id), errors.ErrInvalidConfig)
		}
		ov := out[id]
		ov.Matcher = m
		out[id] = ov
	}

	return out, nil
}

// Matcher builds the matcher a MatchConfig describes. Set fields are
// combined with And.
func Matcher(mc config.MatchConfig) (rule.Matcher, error) {
	var ms []rule.Matcher
	if len(mc.Dirs) > 0 {
		ms = append(ms, rule.InDirs(mc.Dirs...))
	}
	if mc.NamePrefix != "" {
		ms = append(ms, rule.NamePrefix(mc.NamePrefix))
	}
	if mc.NameSuffix != "" {
		ms = append(ms, rule.NameSuffix(mc.NameSuffix))
	}
	if mc.Metadata != "" {
		ms = append(ms, rule.HasMetadata(mc.Metadata))
	}
	if len(mc.Classes) > 0 {
		ms = append(ms, rule.ClassIs(mc.Classes...))
	}
	if p := mc.Property; p != nil {
		if p.Name == "" {
			return nil, errors.New("property matcher needs a name")
		}
		if p.Value == nil {
			ms = append(ms, rule.HasProperty(p.Name))
		} else {
			ms = append(ms, rule.PropertyEquals(p.Name, p.Value))
		}
	}
	if len(mc.Any) > 0 {
		alts := make([]rule.Matcher, 0, len(mc.Any))
		for i, alt := range mc.Any {
			m, err := Matcher(alt)
			if err != nil {
				return nil, errors.Wrapf(err, "any[%d]", i)
			}
			alts = append(alts, m)
		}
		ms = append(ms, rule.Or(alts...))
	}
	if mc.Not != nil {
		m, err := Matcher(*mc.Not)
		if err != nil {
			return nil, errors.Wrap(err, "not")
		}
		ms = append(ms, rule.Not(m))
	}

	switch len(ms) {
	case 0:
		return nil, errors.New("empty matcher")
	case 1:
		return ms[0], nil
	}
	return rule.And(ms...), nil
}

// BuildRegistry registers the configured catalog and seals the registry.
func BuildRegistry(cfg *config.Config) (*rule.Registry, error) {
	settings, err := Settings(cfg)
	if err != nil {
		return nil, err
	}
	overrides, err := Overrides(cfg)
	if err != nil {
		return nil, err
	}

	reg := rule.NewRegistry()
	if err := rules.RegisterDefaults(reg, settings, cfg.Rules.Disabled, overrides); err != nil {
		return nil, errors.Wrap(err, "registering rules")
	}
	reg.Seal()
	return reg, nil
}

// SessionOptions derives session options from cfg for one run.
func SessionOptions(cfg *config.Config, mode session.Mode, trigger rule.Trigger) (session.Options, error) {
	opts := session.Options{
		Mode:        mode,
		Trigger:     trigger,
		Workers:     cfg.Session.Workers,
		Dirs:        cfg.Dirs,
		SkipGeneric: !cfg.Session.GenericAssets,
	}

	if cfg.Session.Threshold != "" {
		sev, err := validator.ParseSeverity(cfg.Session.Threshold)
		if err != nil {
			return opts, errors.Mark(errors.Wrap(err, "session.threshold"), errors.ErrInvalidConfig)
		}
		opts.Threshold = sev
	}

	for _, ex := range cfg.Exclusions {
		opts.Exclusions = append(opts.Exclusions, rule.Exclusion{
			Description: ex.Description,
			Rules:       ex.Rules,
			Dirs:        ex.Dirs,
		})
	}
	return opts, nil
}
