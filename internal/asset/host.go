package asset

import "context"

// Handle addresses an asset on a host.
type Handle struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
}

func (h Handle) String() string {
	return h.Path
}

// Host is the engine-side collaborator that owns assets.
//
// Load returns a private copy; mutating it has no effect on the host.
// Edits go through BeginEdit, which yields a working copy that is published
// by Commit or discarded by Rollback.
type Host interface {
	// ListAssets enumerates assets of the given kinds, all kinds when none
	// are given, ordered by path.
	ListAssets(ctx context.Context, kinds ...Kind) ([]Handle, error)
	// Load returns a copy of the asset.
	Load(ctx context.Context, h Handle) (*Asset, error)
	// BeginEdit opens a reversible edit scope on the asset.
	BeginEdit(ctx context.Context, h Handle) (EditScope, error)
}

// EditScope is a single-use reversible edit of one asset.
type EditScope interface {
	// Asset returns the mutable working copy.
	Asset() *Asset
	// Commit publishes the working copy. The asset may have been renamed,
	// in which case the host moves it.
	Commit(ctx context.Context) error
	// Rollback discards the working copy. Calling Rollback after Commit is
	// a no-op.
	Rollback() error
}
