package inspect

import (
	"path"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Editor mutates the working copy of an open edit scope. It is only handed
// to rule fixes and must not be retained after the fix returns.
type Editor struct {
	a       *asset.Asset
	changed bool
}

// NewEditor wraps the working copy of an edit scope.
func NewEditor(working *asset.Asset) *Editor {
	return &Editor{a: working}
}

// Changed reports whether any mutation was made.
func (e *Editor) Changed() bool {
	return e.changed
}

// Path returns the current asset path, reflecting renames.
func (e *Editor) Path() string {
	return e.a.Path
}

// Rename changes the asset name, keeping its directory.
func (e *Editor) Rename(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\. ") {
		return errors.Newf("invalid asset name %q", name)
	}
	next := path.Join(e.a.Dir(), name)
	if next == e.a.Path {
		return nil
	}
	e.a.Path = next
	e.changed = true
	return nil
}

// SetMetadata sets a metadata tag.
func (e *Editor) SetMetadata(key, value string) {
	if e.a.Metadata == nil {
		e.a.Metadata = make(map[string]string)
	}
	if old, ok := e.a.Metadata[key]; ok && old == value {
		return
	}
	e.a.Metadata[key] = value
	e.changed = true
}

// RemoveMetadata deletes a metadata tag and reports whether it existed.
func (e *Editor) RemoveMetadata(key string) bool {
	if _, ok := e.a.Metadata[key]; !ok {
		return false
	}
	delete(e.a.Metadata, key)
	e.changed = true
	return true
}

// SetProperty sets a top-level property.
func (e *Editor) SetProperty(name string, value any) {
	if e.a.Properties == nil {
		e.a.Properties = make(map[string]any)
	}
	e.a.Properties[name] = asset.CloneValue(value)
	e.changed = true
}

// DeleteProperty removes a top-level property and reports whether it existed.
func (e *Editor) DeleteProperty(name string) bool {
	if _, ok := e.a.Properties[name]; !ok {
		return false
	}
	delete(e.a.Properties, name)
	e.changed = true
	return true
}

// SetObjectProperty sets a property on the sub-object at objectPath.
func (e *Editor) SetObjectProperty(objectPath, name string, value any) error {
	obj, ok := e.a.Lookup(objectPath)
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "object %s", objectPath)
	}
	if obj.Properties == nil {
		obj.Properties = make(map[string]any)
	}
	obj.Properties[name] = asset.CloneValue(value)
	e.changed = true
	return nil
}

// RemoveObject deletes the sub-object at objectPath and reports whether it
// existed.
func (e *Editor) RemoveObject(objectPath string) bool {
	objectPath = strings.Trim(objectPath, "/")
	parentPath, name := "", objectPath
	if i := strings.LastIndex(objectPath, "/"); i >= 0 {
		parentPath, name = objectPath[:i], objectPath[i+1:]
	}

	list := &e.a.Objects
	if parentPath != "" {
		parent, ok := e.a.Lookup(parentPath)
		if !ok {
			return false
		}
		list = &parent.Objects
	}

	for i, o := range *list {
		if o.Name == name {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			e.changed = true
			return true
		}
	}
	return false
}
