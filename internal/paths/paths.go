package paths

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// AppName names the per-user config, state and cache directories.
const AppName = "ruleranger"

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = ".ruleranger.yaml"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")

	// ErrOutsideContent indicates a file or asset path lies outside the
	// content root or mount point.
	ErrOutsideContent = errors.New("path is outside the content root")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	home, _ := os.UserHomeDir()
	return home
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
func StateHome() string {
	return xdg.StateHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns <ConfigHome>/ruleranger.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// UserConfigFile returns the per-user config file path.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// MetricsFile returns the default textfile path for exported metrics.
func MetricsFile() string {
	return filepath.Join(StateHome(), AppName, "metrics.prom")
}

// FindProjectConfig walks from dir towards the filesystem root and returns
// the first ProjectConfigFile found. It returns an error matching
// errors.ErrNotFound when there is none.
func FindProjectConfig(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	for {
		candidate := filepath.Join(abs, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", errors.Wrapf(errors.ErrNotFound, "no %s above %s", ProjectConfigFile, dir)
		}
		abs = parent
	}
}

// ResolveContentRoot makes a content root from configuration absolute.
// Relative roots are resolved against the directory of the config file, or
// the working directory when no config file was used.
func ResolveContentRoot(root, configFile string) (string, error) {
	if root == "" || strings.ContainsRune(root, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "content root %q", root)
	}
	if !filepath.IsAbs(root) && configFile != "" {
		root = filepath.Join(filepath.Dir(configFile), root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving content root %s", root)
	}
	return abs, nil
}

// CleanMount normalizes a mount point to a rooted slash path without a
// trailing slash, e.g. "Game/" becomes "/Game".
func CleanMount(mount string) string {
	return path.Clean("/" + strings.Trim(mount, "/"))
}

// AssetPath maps a descriptor file below root onto its asset path under
// mount: the relative path without extension, slash separated.
func AssetPath(root, mount, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", file)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrOutsideContent, "%s is outside %s", file, root)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return path.Join(CleanMount(mount), filepath.ToSlash(rel)), nil
}

// DescriptorPath maps an asset path under mount back to a descriptor file
// below root with the given extension (without dot).
func DescriptorPath(root, mount, assetPath, ext string) (string, error) {
	mount = CleanMount(mount)
	if !strings.HasPrefix(assetPath, mount+"/") || len(assetPath) == len(mount)+1 {
		return "", errors.Wrapf(ErrOutsideContent, "asset path %s is outside mount %s", assetPath, mount)
	}
	rel := strings.TrimPrefix(assetPath, mount+"/")
	return filepath.Join(root, filepath.FromSlash(rel)) + "." + ext, nil
}
