package asset

import (
	"encoding/json"
	"maps"
	"path"
	"slices"
	"strings"
)

// Object is a named sub-object of an asset: a graph, node, emitter or script.
type Object struct {
	Name       string         `yaml:"name" json:"name" toml:"name"`
	Class      string         `yaml:"class,omitempty" json:"class,omitempty" toml:"class,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty" toml:"properties,omitempty"`
	Objects    []Object       `yaml:"objects,omitempty" json:"objects,omitempty" toml:"objects,omitempty"`
}

// EditorState reports whether the host currently has the asset open and
// unsaved.
type EditorState struct {
	Open  bool `yaml:"open,omitempty" json:"open,omitempty" toml:"open,omitempty"`
	Dirty bool `yaml:"dirty,omitempty" json:"dirty,omitempty" toml:"dirty,omitempty"`
}

// Asset is the host's in-memory representation of a content asset.
//
// Path is the mount-relative object path (e.g. "/Game/UI/WBP_Menu"); it is
// derived by the host and never serialized.
type Asset struct {
	Path         string            `yaml:"-" json:"-" toml:"-"`
	Class        string            `yaml:"class" json:"class" toml:"class"`
	Capabilities []Capability      `yaml:"capabilities,omitempty" json:"capabilities,omitempty" toml:"capabilities,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty" toml:"metadata,omitempty"`
	Properties   map[string]any    `yaml:"properties,omitempty" json:"properties,omitempty" toml:"properties,omitempty"`
	Objects      []Object          `yaml:"objects,omitempty" json:"objects,omitempty" toml:"objects,omitempty"`
	Editor       EditorState       `yaml:"editor,omitempty" json:"editor,omitempty" toml:"editor,omitempty"`
}

// Name returns the last element of the asset path.
func (a *Asset) Name() string {
	return path.Base(a.Path)
}

// Dir returns the directory portion of the asset path.
func (a *Asset) Dir() string {
	return path.Dir(a.Path)
}

// Kind classifies the asset by its class.
func (a *Asset) Kind() Kind {
	k, _ := Classify(a.Class)
	return k
}

// Handle returns a handle addressing this asset.
func (a *Asset) Handle() Handle {
	return Handle{Path: a.Path, Kind: a.Kind()}
}

// Has reports whether the asset carries the capability, either declared
// explicitly or implied by its class.
func (a *Asset) Has(c Capability) bool {
	if slices.Contains(a.Capabilities, c) {
		return true
	}
	_, implied := Classify(a.Class)
	return slices.Contains(implied, c)
}

// AllCapabilities returns declared and implied capabilities, deduplicated
// and sorted.
func (a *Asset) AllCapabilities() []Capability {
	_, implied := Classify(a.Class)
	all := append(slices.Clone(a.Capabilities), implied...)
	slices.Sort(all)
	return slices.Compact(all)
}

// Lookup resolves a slash separated object path such as "EventGraph/Node_3".
func (a *Asset) Lookup(objectPath string) (*Object, bool) {
	parts := strings.Split(strings.Trim(objectPath, "/"), "/")
	objects := a.Objects
	var found *Object
	for _, part := range parts {
		found = nil
		for i := range objects {
			if objects[i].Name == part {
				found = &objects[i]
				break
			}
		}
		if found == nil {
			return nil, false
		}
		objects = found.Objects
	}
	return found, found != nil
}

// Clone returns a deep copy of the asset.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	out := *a
	out.Capabilities = slices.Clone(a.Capabilities)
	out.Metadata = maps.Clone(a.Metadata)
	out.Properties = cloneProperties(a.Properties)
	out.Objects = cloneObjects(a.Objects)
	return &out
}

// Snapshot returns a canonical serialization of the asset's content, path
// included. Two assets with equal snapshots are indistinguishable to rules.
func (a *Asset) Snapshot() []byte {
	data, err := json.Marshal(struct {
		Path string `json:"path"`
		*Asset
	}{Path: a.Path, Asset: a})
	if err != nil {
		// Properties hold only decoded descriptor values, which always marshal.
		panic(err)
	}
	return data
}

func cloneObjects(in []Object) []Object {
	if in == nil {
		return nil
	}
	out := make([]Object, len(in))
	for i, o := range in {
		out[i] = Object{
			Name:       o.Name,
			Class:      o.Class,
			Properties: cloneProperties(o.Properties),
			Objects:    cloneObjects(o.Objects),
		}
	}
	return out
}

func cloneProperties(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a decoded property value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneProperties(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
