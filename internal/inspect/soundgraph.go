//go:build soundgraph

package inspect

import (
	"slices"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

const soundReferenceClass = "MetaSoundReference"

func soundGraphAdapters() []Adapter {
	return []Adapter{SoundGraphAdapter{}}
}

type soundGraphView struct {
	graph SoundGraph
}

func (v soundGraphView) SoundGraph() SoundGraph {
	g := v.graph
	g.Nodes = slices.Clone(g.Nodes)
	g.References = slices.Clone(g.References)
	return g
}

// SoundGraphAdapter inspects MetaSound sources and patches. The Author and
// IsPreset properties describe the graph; top-level objects are nodes, and
// MetaSoundReference nodes reference other graphs through their Target,
// TargetClass and TargetIsPreset properties.
type SoundGraphAdapter struct{}

func (SoundGraphAdapter) Kind() asset.Kind { return asset.KindSoundGraph }

func (SoundGraphAdapter) View(a *asset.Asset) (any, error) {
	g := SoundGraph{Author: asset.String(a.Properties["Author"])}
	g.IsPreset, _ = asset.Bool(a.Properties["IsPreset"])

	for _, node := range viewObjects("", a.Objects) {
		g.Nodes = append(g.Nodes, node)
		if node.Class != soundReferenceClass {
			continue
		}
		ref := SoundReference{
			ObjectView:  node,
			Target:      asset.String(node.props["Target"]),
			TargetClass: asset.String(node.props["TargetClass"]),
		}
		ref.TargetIsPreset, _ = asset.Bool(node.props["TargetIsPreset"])
		g.References = append(g.References, ref)
	}
	return soundGraphView{graph: g}, nil
}
