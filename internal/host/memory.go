package host

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
)

var (
	// ErrEditInProgress is returned by BeginEdit when the asset already has
	// an open edit scope.
	ErrEditInProgress = errors.New("asset already has an open edit scope")

	// ErrScopeClosed is returned when committing a scope that was already
	// committed or rolled back.
	ErrScopeClosed = errors.New("edit scope is closed")

	// ErrAssetExists is returned when a rename would overwrite another asset.
	ErrAssetExists = errors.New("asset already exists")
)

// persistFunc writes a committed asset to backing storage. from is the path
// the asset had when the edit began.
type persistFunc func(ctx context.Context, from string, a *asset.Asset) error

// Memory is an in-process asset host. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	assets  map[string]*asset.Asset
	editing map[string]struct{}
	persist persistFunc
}

// NewMemory creates a host seeded with copies of the given assets.
func NewMemory(assets ...*asset.Asset) *Memory {
	m := &Memory{
		assets:  make(map[string]*asset.Asset, len(assets)),
		editing: make(map[string]struct{}),
	}
	for _, a := range assets {
		m.Put(a)
	}
	return m
}

// Put stores a copy of the asset, replacing any asset at the same path.
func (m *Memory) Put(a *asset.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[a.Path] = a.Clone()
}

// Remove deletes the asset at path, if present.
func (m *Memory) Remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, path)
}

// Get returns a copy of the asset at path.
func (m *Memory) Get(path string) (*asset.Asset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[path]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Len returns the number of assets held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}

// ListAssets implements [asset.Host].
func (m *Memory) ListAssets(ctx context.Context, kinds ...asset.Kind) ([]asset.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	handles := make([]asset.Handle, 0, len(m.assets))
	for _, a := range m.assets {
		h := a.Handle()
		if len(kinds) > 0 && !slices.Contains(kinds, h.Kind) {
			continue
		}
		handles = append(handles, h)
	}
	slices.SortFunc(handles, func(a, b asset.Handle) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return handles, nil
}

// Load implements [asset.Host].
func (m *Memory) Load(ctx context.Context, h asset.Handle) (*asset.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := m.Get(h.Path)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "asset %s", h.Path)
	}
	return a, nil
}

// BeginEdit implements [asset.Host].
func (m *Memory) BeginEdit(ctx context.Context, h asset.Handle) (asset.EditScope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[h.Path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "asset %s", h.Path)
	}
	if _, busy := m.editing[h.Path]; busy {
		return nil, errors.Wrapf(ErrEditInProgress, "asset %s", h.Path)
	}
	m.editing[h.Path] = struct{}{}

	return &scope{host: m, from: h.Path, working: a.Clone()}, nil
}

func (m *Memory) commit(ctx context.Context, from string, working *asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if working.Path != from {
		if _, exists := m.assets[working.Path]; exists {
			return errors.Wrapf(ErrAssetExists, "renaming %s to %s", from, working.Path)
		}
	}

	if m.persist != nil {
		if err := m.persist(ctx, from, working); err != nil {
			return errors.Wrapf(err, "persisting %s", working.Path)
		}
	}

	delete(m.assets, from)
	m.assets[working.Path] = working.Clone()
	delete(m.editing, from)
	return nil
}

func (m *Memory) release(from string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editing, from)
}

// scope is the EditScope handed out by Memory.
type scope struct {
	host    *Memory
	from    string
	working *asset.Asset
	closed  bool
}

func (s *scope) Asset() *asset.Asset {
	return s.working
}

// Commit publishes the working copy. A failed commit leaves the scope open so
// the caller can still roll back.
func (s *scope) Commit(ctx context.Context) error {
	if s.closed {
		return ErrScopeClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.host.commit(ctx, s.from, s.working); err != nil {
		return err
	}
	s.closed = true
	return nil
}

func (s *scope) Rollback() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.host.release(s.from)
	return nil
}
