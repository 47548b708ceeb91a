//go:build soundgraph

package rules

import (
	"context"
	"fmt"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

func soundGraphRules() []rule.Rule {
	return []rule.Rule{
		NewMetaSoundAuthorBlank(),
		NewNoMetaSoundSourceReference(),
	}
}

// MetaSoundAuthorBlank requires the Author field of sound graphs to be
// empty. The fix clears it.
type MetaSoundAuthorBlank struct {
	base
}

// NewMetaSoundAuthorBlank creates the metasound-author-blank rule.
func NewMetaSoundAuthorBlank() *MetaSoundAuthorBlank {
	return &MetaSoundAuthorBlank{base: base{meta: rule.Meta{
		ID:          "metasound-author-blank",
		Description: "Sound graphs leave the Author field blank",
		Severity:    validator.SeverityWarning,
		Kinds:       []asset.Kind{asset.KindSoundGraph},
	}}}
}

func (r *MetaSoundAuthorBlank) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	g, ok := c.SoundGraph()
	if !ok || g.Author == "" {
		return nil, nil
	}
	return []rule.Finding{{
		Message: fmt.Sprintf("author field is %q and should be blank", g.Author),
		Fixable: true,
	}}, nil
}

func (r *MetaSoundAuthorBlank) Fix(_ context.Context, _ *inspect.Context, ed *inspect.Editor, _ validator.Report) error {
	ed.SetProperty("Author", "")
	return nil
}

// NoMetaSoundSourceReference forbids sound graphs from referencing a
// non-preset MetaSoundSource directly; references should go through a
// preset. Preset graphs are exempt.
type NoMetaSoundSourceReference struct {
	base
}

// NewNoMetaSoundSourceReference creates the no-metasound-source-reference
// rule.
func NewNoMetaSoundSourceReference() *NoMetaSoundSourceReference {
	return &NoMetaSoundSourceReference{base: base{meta: rule.Meta{
		ID:          "no-metasound-source-reference",
		Description: "Sound graphs reference MetaSoundSources through presets",
		Severity:    validator.SeverityError,
		Kinds:       []asset.Kind{asset.KindSoundGraph},
	}}}
}

func (r *NoMetaSoundSourceReference) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	g, ok := c.SoundGraph()
	if !ok || g.IsPreset {
		return nil, nil
	}
	var findings []rule.Finding
	for _, ref := range g.References {
		if ref.TargetClass != "MetaSoundSource" || ref.TargetIsPreset {
			continue
		}
		findings = append(findings, rule.Finding{
			Object:  ref.Path,
			Message: fmt.Sprintf("node %s directly references MetaSoundSource %s; reference a preset instead", ref.Name, ref.Target),
		})
	}
	return findings, nil
}
