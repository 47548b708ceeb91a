package rules

import (
	"context"
	"fmt"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// NiagaraCompileStatus requires every particle script to be compiled and up
// to date.
type NiagaraCompileStatus struct {
	base
	errorOnWarnings bool
	errorOnUnknown  bool
}

// NewNiagaraCompileStatus creates the niagara-compile-status rule.
func NewNiagaraCompileStatus(errorOnWarnings, errorOnUnknown bool) *NiagaraCompileStatus {
	return &NiagaraCompileStatus{
		base: base{meta: rule.Meta{
			ID:          "niagara-compile-status",
			Description: "Particle scripts are compiled and up to date",
			Severity:    validator.SeverityError,
			Kinds:       []asset.Kind{asset.KindNiagaraSystem},
		}},
		errorOnWarnings: errorOnWarnings,
		errorOnUnknown:  errorOnUnknown,
	}
}

func (r *NiagaraCompileStatus) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	emitters, ok := c.Emitters()
	if !ok {
		return nil, nil
	}
	var findings []rule.Finding
	for _, e := range emitters {
		for _, s := range e.Scripts {
			if msg := r.problem(s); msg != "" {
				findings = append(findings, rule.Finding{Object: s.Path, Message: msg})
			}
		}
	}
	return findings, nil
}

func (r *NiagaraCompileStatus) problem(s inspect.Script) string {
	switch {
	case s.Status == inspect.CompileDirty:
		return fmt.Sprintf("script %s is dirty and needs to be recompiled", s.Name)
	case s.Status == inspect.CompileError:
		return fmt.Sprintf("script %s failed to compile; fix errors and recompile", s.Name)
	case s.Status.HasWarnings() && r.errorOnWarnings:
		return fmt.Sprintf("script %s compiled with warnings", s.Name)
	case s.Status == inspect.CompileUnknown && r.errorOnUnknown:
		return fmt.Sprintf("script %s has an unknown compile status; recompile it", s.Name)
	}
	return ""
}

// NiagaraDisabledEmitters flags disabled emitters left in a system. The fix
// deletes the emitter.
type NiagaraDisabledEmitters struct {
	base
}

// NewNiagaraDisabledEmitters creates the niagara-disabled-emitters rule.
func NewNiagaraDisabledEmitters() *NiagaraDisabledEmitters {
	return &NiagaraDisabledEmitters{base: base{meta: rule.Meta{
		ID:          "niagara-disabled-emitters",
		Description: "Particle systems do not keep disabled emitters",
		Severity:    validator.SeverityWarning,
		Kinds:       []asset.Kind{asset.KindNiagaraSystem},
	}}}
}

func (r *NiagaraDisabledEmitters) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	if c.Has(asset.CapabilityEmitter) {
		return nil, nil
	}
	emitters, _ := c.Emitters()
	var findings []rule.Finding
	for _, e := range emitters {
		if e.Enabled {
			continue
		}
		findings = append(findings, rule.Finding{
			Object:  e.Path,
			Message: fmt.Sprintf("emitter %s is disabled", e.Name),
			Fixable: true,
		})
	}
	return findings, nil
}

func (r *NiagaraDisabledEmitters) Fix(_ context.Context, _ *inspect.Context, ed *inspect.Editor, report validator.Report) error {
	if !ed.RemoveObject(report.Object) {
		return errors.Wrapf(errors.ErrNotFound, "emitter %s", report.Object)
	}
	return nil
}
