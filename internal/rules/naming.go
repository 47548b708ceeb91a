package rules

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// VariantTag is the metadata tag selecting a naming convention variant.
const VariantTag = "RuleRanger.Variant"

// NamingConvention requires asset names to carry the prefix and suffix of
// the most specific matching convention. Prefixes claimed by other
// conventions are stripped first, so a material instance named M_Rock
// becomes MI_Rock rather than MI_M_Rock.
type NamingConvention struct {
	base
	conventions   []Convention
	notifyMissing bool
}

// NewNamingConvention creates the naming-convention rule.
func NewNamingConvention(conventions []Convention, notifyMissing bool) *NamingConvention {
	return &NamingConvention{
		base: base{meta: rule.Meta{
			ID:          "naming-convention",
			Description: "Asset names follow the configured prefix/suffix conventions",
			Severity:    validator.SeverityWarning,
			Kinds:       asset.Kinds(),
		}},
		conventions:   slices.Clone(conventions),
		notifyMissing: notifyMissing,
	}
}

// conventionScore ranks how closely a convention matches an asset; zero
// means it does not match. Class beats capability beats kind alone.
func conventionScore(conv Convention, c *inspect.Context, variant string) int {
	if conv.Kind != c.Kind() {
		return 0
	}
	if conv.Variant != "" && conv.Variant != variant {
		return 0
	}
	score := 1
	if conv.Capability != "" {
		if !c.Has(conv.Capability) {
			return 0
		}
		score += 2
	}
	if conv.Class != "" {
		if conv.Class != c.Class() {
			return 0
		}
		score += 4
	}
	if conv.Variant != "" {
		score++
	}
	return score
}

// match returns the most specific convention for the asset. Ties go to the
// convention configured first.
func (r *NamingConvention) match(c *inspect.Context) (Convention, bool) {
	variant, _ := c.Metadata(VariantTag)
	best, bestScore := Convention{}, 0
	for _, conv := range r.conventions {
		if score := conventionScore(conv, c, variant); score > bestScore {
			best, bestScore = conv, score
		}
	}
	return best, bestScore > 0
}

// ExpectedName returns the name the asset should have and whether a
// convention matched.
func (r *NamingConvention) ExpectedName(c *inspect.Context) (string, bool) {
	name := c.Name()
	conv, ok := r.match(c)
	if !ok {
		return name, false
	}

	if conv.Prefix == "" || !strings.HasPrefix(name, conv.Prefix) {
		for _, other := range r.conventions {
			if other == conv || other.Prefix == "" || other.Prefix == conv.Prefix {
				continue
			}
			if strings.HasPrefix(name, other.Prefix) {
				name = strings.TrimPrefix(name, other.Prefix)
				break
			}
		}
	}

	if conv.Prefix != "" && !strings.HasPrefix(name, conv.Prefix) {
		name = conv.Prefix + name
	}
	if conv.Suffix != "" && !strings.HasSuffix(name, conv.Suffix) {
		name += conv.Suffix
	}
	return name, true
}

func (r *NamingConvention) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	expected, matched := r.ExpectedName(c)
	if !matched {
		if !r.notifyMissing {
			return nil, nil
		}
		variant, _ := c.Metadata(VariantTag)
		return []rule.Finding{{
			Message: fmt.Sprintf("no naming convention for class %s, variant %q", c.Class(), variant),
		}}, nil
	}
	if expected == c.Name() {
		return nil, nil
	}
	return []rule.Finding{{
		Message: fmt.Sprintf("asset should be renamed from %q to %q", c.Name(), expected),
		Fixable: true,
	}}, nil
}

func (r *NamingConvention) Fix(_ context.Context, c *inspect.Context, ed *inspect.Editor, _ validator.Report) error {
	expected, matched := r.ExpectedName(c)
	if !matched {
		return nil
	}
	return ed.Rename(expected)
}
