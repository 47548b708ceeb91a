package rules

import (
	"context"
	"fmt"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// MaterialTextureSampleLimit caps texture sample expressions per material.
type MaterialTextureSampleLimit struct {
	base
	max int
}

// NewMaterialTextureSampleLimit creates the material-texture-sample-limit
// rule.
func NewMaterialTextureSampleLimit(limit int) *MaterialTextureSampleLimit {
	return &MaterialTextureSampleLimit{
		base: base{meta: rule.Meta{
			ID:          "material-texture-sample-limit",
			Description: fmt.Sprintf("Materials use at most %d texture samples", limit),
			Severity:    validator.SeverityError,
			Kinds:       []asset.Kind{asset.KindMaterial},
		}},
		max: limit,
	}
}

func (r *MaterialTextureSampleLimit) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	samples, ok := c.TextureSamples()
	if !ok || r.max <= 0 || len(samples) <= r.max {
		return nil, nil
	}
	return []rule.Finding{{
		Message: fmt.Sprintf("material uses %d texture samples, exceeding the limit of %d", len(samples), r.max),
	}}, nil
}
