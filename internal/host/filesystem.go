package host

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/paths"
	"github.com/thoreinstein/ruleranger/pkg/fileutil"
)

// DescriptorError records a descriptor file that could not be loaded.
type DescriptorError struct {
	File string
	Err  error
}

func (e *DescriptorError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

type descriptorFile struct {
	path   string
	format Format
}

// Filesystem is a Host backed by descriptor files below a content root.
type Filesystem struct {
	*Memory

	root   string
	mount  string
	logger *slog.Logger

	mu      sync.Mutex
	files   map[string]descriptorFile
	invalid map[string]error
}

// OpenFilesystem loads every descriptor below root. Asset paths are formed
// by joining mount with the descriptor's path relative to root, minus its
// extension. Descriptors that fail to parse are logged and reported by
// [Filesystem.Invalid]; they do not fail the open.
func OpenFilesystem(ctx context.Context, root, mount string, logger *slog.Logger) (*Filesystem, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving content root %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "opening content root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("content root %s is not a directory", root)
	}

	f := &Filesystem{
		Memory:  NewMemory(),
		root:    abs,
		mount:   paths.CleanMount(mount),
		logger:  logger,
		files:   make(map[string]descriptorFile),
		invalid: make(map[string]error),
	}
	f.Memory.persist = f.persist

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := FormatOf(p); !ok {
			return nil
		}
		if _, _, err := f.Reload(ctx, p); err != nil {
			logger.Warn("skipping asset descriptor", "file", p, "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning content root %s", root)
	}

	logger.Debug("content loaded", "root", abs, "assets", f.Len(), "invalid", len(f.invalid))
	return f, nil
}

// Root returns the absolute content root.
func (f *Filesystem) Root() string {
	return f.root
}

// Mount returns the mount point asset paths are rooted at.
func (f *Filesystem) Mount() string {
	return f.mount
}

// AssetPath maps a descriptor file to its asset path.
func (f *Filesystem) AssetPath(file string) (string, error) {
	return paths.AssetPath(f.root, f.mount, file)
}

// filePath maps an asset path back to a descriptor file in the given format.
func (f *Filesystem) filePath(assetPath string, format Format) (string, error) {
	return paths.DescriptorPath(f.root, f.mount, assetPath, string(format))
}

// Reload re-reads a single descriptor file. When the file no longer exists
// the asset is removed and removed reports true.
func (f *Filesystem) Reload(ctx context.Context, file string) (h asset.Handle, removed bool, err error) {
	if err := ctx.Err(); err != nil {
		return asset.Handle{}, false, err
	}
	format, ok := FormatOf(file)
	if !ok {
		return asset.Handle{}, false, errors.Newf("%s is not an asset descriptor", file)
	}
	assetPath, err := f.AssetPath(file)
	if err != nil {
		return asset.Handle{}, false, err
	}
	abs, _ := filepath.Abs(file)

	// The memory host is updated after f.mu is released; commit acquires
	// the memory lock before f.mu.
	a, removed, err := f.reload(abs, assetPath, format)
	if err != nil {
		return asset.Handle{}, false, err
	}
	if removed {
		f.Remove(assetPath)
		return asset.Handle{Path: assetPath}, true, nil
	}
	f.Put(a)
	return a.Handle(), false, nil
}

func (f *Filesystem) reload(abs, assetPath string, format Format) (*asset.Asset, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fail := func(err error) (*asset.Asset, bool, error) {
		derr := &DescriptorError{File: abs, Err: err}
		f.invalid[abs] = derr
		return nil, false, derr
	}

	if existing, ok := f.files[assetPath]; ok && existing.path != abs {
		return fail(errors.Wrapf(ErrAssetExists, "%s already defined by %s", assetPath, existing.path))
	}

	data, err := fileutil.ReadFileWithLimit(abs)
	if errors.Is(err, fs.ErrNotExist) {
		delete(f.invalid, abs)
		delete(f.files, assetPath)
		return nil, true, nil
	}
	if err != nil {
		return fail(err)
	}

	a, err := Decode(format, data)
	if err != nil {
		return fail(err)
	}
	a.Path = assetPath

	delete(f.invalid, abs)
	f.files[assetPath] = descriptorFile{path: abs, format: format}
	return a, false, nil
}

// Invalid returns the descriptor files that failed to load.
func (f *Filesystem) Invalid() []*DescriptorError {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*DescriptorError, 0, len(f.invalid))
	for file, err := range f.invalid {
		var derr *DescriptorError
		if !errors.As(err, &derr) {
			derr = &DescriptorError{File: file, Err: err}
		}
		out = append(out, derr)
	}
	sortDescriptorErrors(out)
	return out
}

// File returns the descriptor file backing an asset path.
func (f *Filesystem) File(assetPath string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	df, ok := f.files[assetPath]
	return df.path, ok
}

// persist writes a committed asset back to its descriptor. Renamed assets
// are written to their new location before the old file is removed; when
// the old file cannot be removed the new one is removed again.
func (f *Filesystem) persist(_ context.Context, from string, a *asset.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	df, ok := f.files[from]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "descriptor for %s", from)
	}

	target := df.path
	if a.Path != from {
		var err error
		target, err = f.filePath(a.Path, df.format)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrap(err, "creating asset directory")
		}
	}

	if err := writeDescriptor(target, df.format, a); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}

	if target != df.path {
		if err := os.Remove(df.path); err != nil {
			if rmErr := os.Remove(target); rmErr != nil {
				f.logger.Warn("cannot remove new descriptor after failed rename", "file", target, "error", rmErr)
			}
			return errors.Wrapf(err, "removing renamed descriptor %s", df.path)
		}
		delete(f.files, from)
	}
	f.files[a.Path] = descriptorFile{path: target, format: df.format}

	f.logger.Debug("asset committed", "asset", a.Path, "file", target)
	return nil
}
