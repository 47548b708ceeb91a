package inspect

// SoundReference is a sound graph node that references another sound graph.
type SoundReference struct {
	ObjectView
	Target         string
	TargetClass    string
	TargetIsPreset bool
}

// SoundGraph is the view of a MetaSound source or patch.
type SoundGraph struct {
	Author     string
	IsPreset   bool
	Nodes      []ObjectView
	References []SoundReference
}

// SoundGraphSource is implemented by views of sound graph assets.
type SoundGraphSource interface {
	SoundGraph() SoundGraph
}
