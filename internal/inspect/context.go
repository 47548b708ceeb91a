package inspect

import (
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

// ObjectView is a read-only view of an asset sub-object.
type ObjectView struct {
	// Path is the slash separated path from the asset root, e.g.
	// "EventGraph/K2Node_Event_0".
	Path  string
	Name  string
	Class string

	props    map[string]any
	children []ObjectView
}

// Property returns a copy of the named property.
func (o ObjectView) Property(name string) (any, bool) {
	v, ok := o.props[name]
	return asset.CloneValue(v), ok
}

// PropertyNames returns the sorted property names.
func (o ObjectView) PropertyNames() []string {
	return slices.Sorted(maps.Keys(o.props))
}

// Children returns the direct sub-objects.
func (o ObjectView) Children() []ObjectView {
	return slices.Clone(o.children)
}

func viewObjects(parent string, objects []asset.Object) []ObjectView {
	if len(objects) == 0 {
		return nil
	}
	out := make([]ObjectView, len(objects))
	for i, o := range objects {
		p := o.Name
		if parent != "" {
			p = parent + "/" + o.Name
		}
		out[i] = ObjectView{
			Path:     p,
			Name:     o.Name,
			Class:    o.Class,
			props:    o.Properties,
			children: viewObjects(p, o.Objects),
		}
	}
	return out
}

func walkViews(views []ObjectView, fn func(ObjectView) bool) bool {
	for _, v := range views {
		if !fn(v) {
			return false
		}
		if !walkViews(v.children, fn) {
			return false
		}
	}
	return true
}

// Context is the read-only view of one asset handed to rule checks.
type Context struct {
	asset   *asset.Asset
	objects []ObjectView
	view    any
}

func newContext(a *asset.Asset, view any) *Context {
	return &Context{asset: a, objects: viewObjects("", a.Objects), view: view}
}

// Path returns the asset path.
func (c *Context) Path() string { return c.asset.Path }

// Name returns the asset name.
func (c *Context) Name() string { return c.asset.Name() }

// Dir returns the directory containing the asset.
func (c *Context) Dir() string { return c.asset.Dir() }

// Class returns the host class name.
func (c *Context) Class() string { return c.asset.Class }

// Kind returns the asset kind.
func (c *Context) Kind() asset.Kind { return c.asset.Kind() }

// Handle returns a handle to the asset.
func (c *Context) Handle() asset.Handle { return c.asset.Handle() }

// Has reports whether the asset carries the capability.
func (c *Context) Has(capability asset.Capability) bool { return c.asset.Has(capability) }

// Capabilities returns declared and implied capabilities.
func (c *Context) Capabilities() []asset.Capability { return c.asset.AllCapabilities() }

// Editor returns the host editor state of the asset.
func (c *Context) Editor() asset.EditorState { return c.asset.Editor }

// Metadata returns the value of a metadata tag.
func (c *Context) Metadata(key string) (string, bool) {
	v, ok := c.asset.Metadata[key]
	return v, ok
}

// MetadataKeys returns the sorted metadata tag names.
func (c *Context) MetadataKeys() []string {
	return slices.Sorted(maps.Keys(c.asset.Metadata))
}

// Property returns a copy of a top-level property.
func (c *Context) Property(name string) (any, bool) {
	v, ok := c.asset.Properties[name]
	return asset.CloneValue(v), ok
}

// PropertyNames returns the sorted top-level property names.
func (c *Context) PropertyNames() []string {
	return slices.Sorted(maps.Keys(c.asset.Properties))
}

// Objects returns the top-level sub-objects.
func (c *Context) Objects() []ObjectView {
	return slices.Clone(c.objects)
}

// Walk visits every sub-object depth first until fn returns false.
func (c *Context) Walk(fn func(ObjectView) bool) {
	walkViews(c.objects, fn)
}

// Lookup finds a sub-object by its slash separated path.
func (c *Context) Lookup(objectPath string) (ObjectView, bool) {
	objectPath = strings.Trim(objectPath, "/")
	var found ObjectView
	var ok bool
	c.Walk(func(v ObjectView) bool {
		if v.Path == objectPath {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Snapshot returns the canonical serialization of the inspected asset.
func (c *Context) Snapshot() []byte {
	return c.asset.Snapshot()
}

// Graphs returns the asset's graphs when it has a graph capability.
func (c *Context) Graphs() ([]Graph, bool) {
	s, ok := c.view.(GraphSource)
	if !ok {
		return nil, false
	}
	return s.Graphs(), true
}

// Emitters returns the asset's particle emitters when it has any.
func (c *Context) Emitters() ([]Emitter, bool) {
	s, ok := c.view.(EmitterSource)
	if !ok {
		return nil, false
	}
	return s.Emitters(), true
}

// TextureSamples returns the material's texture sample expressions.
func (c *Context) TextureSamples() ([]ObjectView, bool) {
	s, ok := c.view.(TextureSampleSource)
	if !ok {
		return nil, false
	}
	return s.TextureSamples(), true
}

// Texture returns texture dimensions for texture assets.
func (c *Context) Texture() (Texture, bool) {
	s, ok := c.view.(TextureSource)
	if !ok {
		return Texture{}, false
	}
	return s.Texture()
}

// SoundGraph returns the sound graph view when sound graph support is
// compiled in and the asset is a sound graph.
func (c *Context) SoundGraph() (SoundGraph, bool) {
	s, ok := c.view.(SoundGraphSource)
	if !ok {
		return SoundGraph{}, false
	}
	return s.SoundGraph(), true
}
