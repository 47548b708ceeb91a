package rules

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// TextureResolution constrains texture dimensions to powers of two, or to
// multiples of a divisor, and optionally caps their size.
type TextureResolution struct {
	base
	constraint TextureConstraint
	divisor    int
	maxSize    int
}

// NewTextureResolution creates the texture-resolution rule.
func NewTextureResolution(constraint TextureConstraint, divisor, maxSize int) *TextureResolution {
	if constraint == "" {
		constraint = TexturePowerOfTwo
	}
	return &TextureResolution{
		base: base{meta: rule.Meta{
			ID:          "texture-resolution",
			Description: "Texture dimensions satisfy the resolution constraint",
			Severity:    validator.SeverityError,
			Kinds:       []asset.Kind{asset.KindGeneric},
			Requires:    []asset.Capability{asset.CapabilityTexture},
		}},
		constraint: constraint,
		divisor:    divisor,
		maxSize:    maxSize,
	}
}

func (r *TextureResolution) Check(_ context.Context, c *inspect.Context) ([]rule.Finding, error) {
	tex, ok := c.Texture()
	if !ok {
		return []rule.Finding{{Message: "texture has no valid Width and Height properties"}}, nil
	}

	var findings []rule.Finding
	switch r.constraint {
	case TexturePowerOfTwo:
		if !powerOfTwo(tex.Width) || !powerOfTwo(tex.Height) {
			findings = append(findings, rule.Finding{
				Message: fmt.Sprintf("texture is %dx%d; dimensions must be powers of two", tex.Width, tex.Height),
			})
		}
	case TextureDivisible:
		if r.divisor > 0 && (tex.Width%r.divisor != 0 || tex.Height%r.divisor != 0) {
			findings = append(findings, rule.Finding{
				Message: fmt.Sprintf("texture is %dx%d; dimensions must be divisible by %d", tex.Width, tex.Height, r.divisor),
			})
		}
	}

	if r.maxSize > 0 && (tex.Width > r.maxSize || tex.Height > r.maxSize) {
		findings = append(findings, rule.Finding{
			Message: fmt.Sprintf("texture is %dx%d; dimensions must not exceed %d", tex.Width, tex.Height, r.maxSize),
		})
	}
	return findings, nil
}

func powerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}
