package inspect

import (
	"slices"

	"github.com/thoreinstein/ruleranger/internal/asset"
)

// GraphKind distinguishes blueprint graph types.
type GraphKind int

const (
	GraphEvent GraphKind = iota + 1
	GraphFunction
	GraphMacro
)

func (k GraphKind) String() string {
	switch k {
	case GraphEvent:
		return "event"
	case GraphFunction:
		return "function"
	case GraphMacro:
		return "macro"
	}
	return "unknown"
}

var graphClasses = map[string]GraphKind{
	"EventGraph":    GraphEvent,
	"FunctionGraph": GraphFunction,
	"MacroGraph":    GraphMacro,
}

// trivialNodeClasses carry no logic: reroute knots, comments and the
// entry/result nodes every function graph has.
var trivialNodeClasses = []string{
	"K2Node_Knot",
	"EdGraphNode_Comment",
	"K2Node_FunctionEntry",
	"K2Node_FunctionResult",
}

// Node is a blueprint graph node.
type Node struct {
	ObjectView
	// Trivial nodes are reroutes, comments, function entry/result nodes and
	// ghost (placeholder) event nodes.
	Trivial bool
}

// Graph is a blueprint event, function or macro graph.
type Graph struct {
	ObjectView
	Kind  GraphKind
	Nodes []Node
}

// NonTrivialNodes returns the nodes that carry logic.
func (g Graph) NonTrivialNodes() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if !n.Trivial {
			out = append(out, n)
		}
	}
	return out
}

// GraphSource is implemented by views of assets that contain graphs.
type GraphSource interface {
	Graphs() []Graph
}

type blueprintView struct {
	graphs []Graph
}

func (v blueprintView) Graphs() []Graph {
	return slices.Clone(v.graphs)
}

// BlueprintAdapter inspects blueprints. Top-level objects whose class is
// EventGraph, FunctionGraph or MacroGraph are graphs; their children are
// nodes.
type BlueprintAdapter struct{}

func (BlueprintAdapter) Kind() asset.Kind { return asset.KindBlueprint }

func (BlueprintAdapter) View(a *asset.Asset) (any, error) {
	var graphs []Graph
	for _, obj := range viewObjects("", a.Objects) {
		kind, ok := graphClasses[obj.Class]
		if !ok {
			continue
		}
		g := Graph{ObjectView: obj, Kind: kind}
		for _, child := range obj.children {
			g.Nodes = append(g.Nodes, Node{ObjectView: child, Trivial: isTrivialNode(child)})
		}
		graphs = append(graphs, g)
	}
	return blueprintView{graphs: graphs}, nil
}

func isTrivialNode(v ObjectView) bool {
	if slices.Contains(trivialNodeClasses, v.Class) {
		return true
	}
	ghost, _ := asset.Bool(v.props["Ghost"])
	return ghost
}
