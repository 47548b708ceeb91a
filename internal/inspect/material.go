package inspect

import (
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

const textureSamplePrefix = "MaterialExpressionTextureSample"

// TextureSampleSource is implemented by views of materials.
type TextureSampleSource interface {
	TextureSamples() []ObjectView
}

type materialView struct {
	samples []ObjectView
}

func (v materialView) TextureSamples() []ObjectView {
	return slices.Clone(v.samples)
}

// MaterialAdapter inspects materials. Any expression object, at any depth,
// whose class starts with MaterialExpressionTextureSample counts as a
// texture sample.
type MaterialAdapter struct{}

func (MaterialAdapter) Kind() asset.Kind { return asset.KindMaterial }

func (MaterialAdapter) View(a *asset.Asset) (any, error) {
	var samples []ObjectView
	walkViews(viewObjects("", a.Objects), func(v ObjectView) bool {
		if strings.HasPrefix(v.Class, textureSamplePrefix) {
			samples = append(samples, v)
		}
		return true
	})
	return materialView{samples: samples}, nil
}
