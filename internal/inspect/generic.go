package inspect

import (
	"github.com/thoreinstein/ruleranger/internal/asset"
)

// Texture holds texture dimensions.
type Texture struct {
	Width  int
	Height int
}

// TextureSource is implemented by views of texture assets.
type TextureSource interface {
	Texture() (Texture, bool)
}

type textureView struct {
	texture Texture
	ok      bool
}

func (v textureView) Texture() (Texture, bool) {
	return v.texture, v.ok
}

// GenericAdapter inspects every asset without a dedicated kind. Assets with
// the texture capability expose their Width and Height properties.
type GenericAdapter struct{}

func (GenericAdapter) Kind() asset.Kind { return asset.KindGeneric }

func (GenericAdapter) View(a *asset.Asset) (any, error) {
	if !a.Has(asset.CapabilityTexture) {
		return nil, nil
	}
	w, wok := asset.Int(a.Properties["Width"])
	h, hok := asset.Int(a.Properties["Height"])
	return textureView{texture: Texture{Width: w, Height: h}, ok: wok && hok}, nil
}
