package rules

import (
	"github.com/thoreinstein/ruleranger/internal/asset"
)

// Convention is a naming convention for a class of assets.
type Convention struct {
	// Kind the convention applies to.
	Kind asset.Kind
	// Class narrows the convention to one host class; empty matches any.
	Class string
	// Capability narrows the convention to assets carrying it; empty
	// matches any.
	Capability asset.Capability
	// Variant matches the RuleRanger.Variant metadata tag; empty is the
	// default variant and matches any asset.
	Variant string
	Prefix  string
	Suffix  string
}

// TextureConstraint selects how texture dimensions are checked.
type TextureConstraint string

const (
	TexturePowerOfTwo TextureConstraint = "power_of_two"
	TextureDivisible  TextureConstraint = "divisible"
)

// Settings configures the built-in rules.
type Settings struct {
	// Conventions are the naming conventions, most specific first within
	// each kind.
	Conventions []Convention
	// NotifyMissingConvention reports assets no convention covers.
	NotifyMissingConvention bool

	// RemoveMetadataTags are metadata tags that must not be present.
	RemoveMetadataTags []string
	// RequiredProperties maps a host class to the properties every asset of
	// that class must set.
	RequiredProperties map[string][]string

	// MaxFunctionNodes caps non-trivial nodes per blueprint function graph.
	MaxFunctionNodes int
	// DataOnlyParents are parent classes whose blueprints must be data-only.
	DataOnlyParents []string

	// MaxTextureSamples caps texture sample expressions per material.
	MaxTextureSamples int
	// TextureConstraint and TextureDivisor constrain texture dimensions.
	TextureConstraint TextureConstraint
	TextureDivisor    int
	// MaxTextureSize caps texture width and height; zero disables the cap.
	MaxTextureSize int

	// NiagaraErrorOnWarnings fails scripts compiled with warnings.
	NiagaraErrorOnWarnings bool
	// NiagaraErrorOnUnknown fails scripts with an unknown compile status.
	NiagaraErrorOnUnknown bool
}

// DefaultSettings returns the catalog defaults.
func DefaultSettings() Settings {
	return Settings{
		Conventions:           DefaultConventions(),
		MaxFunctionNodes:      50,
		MaxTextureSamples:     16,
		TextureConstraint:     TexturePowerOfTwo,
		TextureDivisor:        4,
		MaxTextureSize:        8192,
		NiagaraErrorOnUnknown: true,
	}
}

// DefaultConventions returns a conventional prefix set.
func DefaultConventions() []Convention {
	return []Convention{
		{Kind: asset.KindBlueprint, Capability: asset.CapabilityWidget, Prefix: "WBP_"},
		{Kind: asset.KindBlueprint, Capability: asset.CapabilityAnim, Prefix: "ABP_"},
		{Kind: asset.KindBlueprint, Prefix: "BP_"},
		{Kind: asset.KindNiagaraSystem, Capability: asset.CapabilityEmitter, Prefix: "NE_"},
		{Kind: asset.KindNiagaraSystem, Prefix: "NS_"},
		{Kind: asset.KindMaterial, Capability: asset.CapabilityInstance, Prefix: "MI_"},
		{Kind: asset.KindMaterial, Capability: asset.CapabilityFunction, Prefix: "MF_"},
		{Kind: asset.KindMaterial, Prefix: "M_"},
		{Kind: asset.KindSoundGraph, Capability: asset.CapabilityPatch, Prefix: "MSP_"},
		{Kind: asset.KindSoundGraph, Prefix: "MS_"},
		{Kind: asset.KindGeneric, Capability: asset.CapabilityTexture, Prefix: "T_"},
		{Kind: asset.KindGeneric, Class: "StaticMesh", Prefix: "SM_"},
		{Kind: asset.KindGeneric, Class: "SkeletalMesh", Prefix: "SK_"},
	}
}
