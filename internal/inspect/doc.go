// Package inspect turns host assets into inspection contexts for rules.
//
// An [Inspector] loads an asset through its [asset.Host] and hands it to the
// [Adapter] registered for the asset's kind. The adapter builds a kind
// specific view that the resulting [Context] exposes through capability
// accessors such as [Context.Graphs] or [Context.Emitters]; a rule asks for
// the capability it needs and gets ok=false when the asset does not have it.
//
// Contexts are read-only: every accessor returns copies. Mutation is only
// possible through an [Editor], which wraps the working copy of an open edit
// scope and exists only while a fix is being applied.
//
// Sound graph support is compiled in with the "soundgraph" build tag. Without
// it, sound graph assets have no adapter and inspection fails with
// [UnsupportedAssetError].
package inspect
