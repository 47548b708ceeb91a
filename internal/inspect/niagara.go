package inspect

import (
	"slices"
	"strings"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

// CompileStatus is the last compile status of a particle script.
type CompileStatus string

const (
	CompileBeingCreated                CompileStatus = "BeingCreated"
	CompileDirty                       CompileStatus = "Dirty"
	CompileError                       CompileStatus = "Error"
	CompileUpToDate                    CompileStatus = "UpToDate"
	CompileUpToDateWithWarnings        CompileStatus = "UpToDateWithWarnings"
	CompileComputeUpToDateWithWarnings CompileStatus = "ComputeUpToDateWithWarnings"
	CompileUnknown                     CompileStatus = "Unknown"
)

var compileStatuses = []CompileStatus{
	CompileBeingCreated,
	CompileDirty,
	CompileError,
	CompileUpToDate,
	CompileUpToDateWithWarnings,
	CompileComputeUpToDateWithWarnings,
}

// ParseCompileStatus maps a property value onto a status. Anything
// unrecognised is CompileUnknown.
func ParseCompileStatus(v any) CompileStatus {
	s := strings.TrimPrefix(asset.String(v), "NCS_")
	for _, status := range compileStatuses {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return CompileUnknown
}

// HasWarnings reports whether the status is up to date with warnings.
func (s CompileStatus) HasWarnings() bool {
	return s == CompileUpToDateWithWarnings || s == CompileComputeUpToDateWithWarnings
}

// Script is a compiled particle script.
type Script struct {
	ObjectView
	Status CompileStatus
}

// Emitter is a particle emitter within a system, or the emitter asset itself.
type Emitter struct {
	ObjectView
	Enabled bool
	Scripts []Script
}

// EmitterSource is implemented by views of assets that contain emitters.
type EmitterSource interface {
	Emitters() []Emitter
}

type niagaraView struct {
	emitters []Emitter
}

func (v niagaraView) Emitters() []Emitter {
	return slices.Clone(v.emitters)
}

// NiagaraAdapter inspects particle systems and emitters.
//
// For a system, top-level NiagaraEmitter objects are emitters; an emitter's
// Enabled property defaults to true. An emitter asset is its own single
// emitter with an empty object path. Scripts are NiagaraScript children with
// a CompileStatus property.
type NiagaraAdapter struct{}

func (NiagaraAdapter) Kind() asset.Kind { return asset.KindNiagaraSystem }

func (NiagaraAdapter) View(a *asset.Asset) (any, error) {
	objects := viewObjects("", a.Objects)

	if a.Has(asset.CapabilityEmitter) {
		self := ObjectView{Name: a.Name(), Class: a.Class, props: a.Properties, children: objects}
		return niagaraView{emitters: []Emitter{newEmitter(self)}}, nil
	}

	var emitters []Emitter
	for _, obj := range objects {
		if obj.Class == "NiagaraEmitter" {
			emitters = append(emitters, newEmitter(obj))
		}
	}
	return niagaraView{emitters: emitters}, nil
}

func newEmitter(obj ObjectView) Emitter {
	e := Emitter{ObjectView: obj, Enabled: true}
	if enabled, ok := asset.Bool(obj.props["Enabled"]); ok {
		e.Enabled = enabled
	}
	for _, child := range obj.children {
		if child.Class != "NiagaraScript" {
			continue
		}
		e.Scripts = append(e.Scripts, Script{ObjectView: child, Status: ParseCompileStatus(child.props["CompileStatus"])})
	}
	return e
}
