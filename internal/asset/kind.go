package asset

import (
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Kind is the closed set of asset kinds rules are scoped to.
type Kind int

const (
	// KindGeneric covers every asset without a dedicated kind.
	KindGeneric Kind = iota
	// KindBlueprint covers Blueprint graphs, including widget and anim blueprints.
	KindBlueprint
	// KindNiagaraSystem covers Niagara systems and emitters.
	KindNiagaraSystem
	// KindMaterial covers materials, material instances and material functions.
	KindMaterial
	// KindSoundGraph covers MetaSound sources and patches.
	KindSoundGraph
)

var kindNames = []string{
	KindGeneric:       "generic",
	KindBlueprint:     "blueprint",
	KindNiagaraSystem: "niagara",
	KindMaterial:      "material",
	KindSoundGraph:    "soundgraph",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindGeneric, KindBlueprint, KindNiagaraSystem, KindMaterial, KindSoundGraph}
}

// ParseKind converts a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if idx := slices.Index(kindNames, name); idx >= 0 {
		return Kind(idx), nil
	}
	return 0, errors.Newf("unknown asset kind %q (valid: %s)", s, strings.Join(kindNames, ", "))
}

// Capability is a tag that refines a kind, such as "widget" for widget blueprints.
type Capability string

// Capabilities derived from well-known classes.
const (
	CapabilityWidget   Capability = "widget"
	CapabilityAnim     Capability = "anim"
	CapabilityDataOnly Capability = "data-only"
	CapabilityInstance Capability = "instance"
	CapabilityFunction Capability = "function"
	CapabilityEmitter  Capability = "emitter"
	CapabilityPatch    Capability = "patch"
	CapabilityTexture  Capability = "texture"
)

type classInfo struct {
	kind Kind
	caps []Capability
}

// classes maps host class names onto kinds and implied capabilities.
var classes = map[string]classInfo{
	"Blueprint":                {kind: KindBlueprint},
	"WidgetBlueprint":          {kind: KindBlueprint, caps: []Capability{CapabilityWidget}},
	"AnimBlueprint":            {kind: KindBlueprint, caps: []Capability{CapabilityAnim}},
	"NiagaraSystem":            {kind: KindNiagaraSystem},
	"NiagaraEmitter":           {kind: KindNiagaraSystem, caps: []Capability{CapabilityEmitter}},
	"Material":                 {kind: KindMaterial},
	"MaterialInstanceConstant": {kind: KindMaterial, caps: []Capability{CapabilityInstance}},
	"MaterialFunction":         {kind: KindMaterial, caps: []Capability{CapabilityFunction}},
	"MetaSoundSource":          {kind: KindSoundGraph},
	"MetaSoundPatch":           {kind: KindSoundGraph, caps: []Capability{CapabilityPatch}},
	"Texture2D":                {kind: KindGeneric, caps: []Capability{CapabilityTexture}},
	"TextureCube":              {kind: KindGeneric, caps: []Capability{CapabilityTexture}},
}

// Classify returns the kind and implied capabilities of a host class name.
// Unknown classes are generic.
func Classify(class string) (Kind, []Capability) {
	info, ok := classes[class]
	if !ok {
		return KindGeneric, nil
	}
	return info.kind, slices.Clone(info.caps)
}
