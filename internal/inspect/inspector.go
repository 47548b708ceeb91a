package inspect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
)

// UnsupportedAssetError is returned when no adapter exists for an asset's
// kind. Sessions treat it as a skip, not a failure.
type UnsupportedAssetError struct {
	Path string
	Kind asset.Kind
}

func (e *UnsupportedAssetError) Error() string {
	return fmt.Sprintf("unsupported asset %s: no inspector for kind %s", e.Path, e.Kind)
}

// Is matches errors.ErrUnsupportedAsset.
func (e *UnsupportedAssetError) Is(target error) bool {
	return target == errors.ErrUnsupportedAsset
}

// Adapter builds the kind specific view of an asset.
type Adapter interface {
	// Kind is the asset kind this adapter inspects.
	Kind() asset.Kind
	// View builds the read-only view for a; a is a private copy and may be
	// retained. A nil view is valid for kinds without extra capabilities.
	View(a *asset.Asset) (any, error)
}

// DefaultAdapters returns the adapters compiled into this build.
func DefaultAdapters() []Adapter {
	adapters := []Adapter{
		GenericAdapter{},
		BlueprintAdapter{},
		NiagaraAdapter{},
		MaterialAdapter{},
	}
	return append(adapters, soundGraphAdapters()...)
}

// SoundGraphSupported reports whether this build includes the sound graph
// adapter.
func SoundGraphSupported() bool {
	return len(soundGraphAdapters()) > 0
}

// Inspector builds inspection contexts for assets on a host.
type Inspector struct {
	host     asset.Host
	adapters map[asset.Kind]Adapter
	logger   *slog.Logger
}

// New creates an Inspector. With no adapters, DefaultAdapters is used.
func New(host asset.Host, logger *slog.Logger, adapters ...Adapter) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}
	byKind := make(map[asset.Kind]Adapter, len(adapters))
	for _, a := range adapters {
		byKind[a.Kind()] = a
	}
	return &Inspector{host: host, adapters: byKind, logger: logger}
}

// Supports reports whether an adapter is registered for kind.
func (i *Inspector) Supports(kind asset.Kind) bool {
	_, ok := i.adapters[kind]
	return ok
}

// Host returns the host the inspector loads from.
func (i *Inspector) Host() asset.Host {
	return i.host
}

// Inspect loads the asset addressed by h and builds its context.
func (i *Inspector) Inspect(ctx context.Context, h asset.Handle) (*Context, error) {
	if !i.Supports(h.Kind) {
		return nil, &UnsupportedAssetError{Path: h.Path, Kind: h.Kind}
	}
	a, err := i.host.Load(ctx, h)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", h.Path)
	}
	return i.InspectAsset(a)
}

// InspectAsset builds a context for an already loaded asset. The context
// keeps its own copy.
func (i *Inspector) InspectAsset(a *asset.Asset) (*Context, error) {
	kind := a.Kind()
	adapter, ok := i.adapters[kind]
	if !ok {
		return nil, &UnsupportedAssetError{Path: a.Path, Kind: kind}
	}

	own := a.Clone()
	view, err := adapter.View(own)
	if err != nil {
		return nil, errors.Wrapf(err, "inspecting %s", a.Path)
	}

	i.logger.Debug("asset inspected", "asset", a.Path, "kind", kind)
	return newContext(own, view), nil
}
