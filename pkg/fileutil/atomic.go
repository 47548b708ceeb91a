// Package fileutil provides bounded reads and atomic writes for descriptor files.
package fileutil

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// DefaultFilePerm is used for new files written with perm 0.
const DefaultFilePerm fs.FileMode = 0o644

// AtomicWriteFile replaces path with data through a temp file in the same
// directory, so readers see either the old or the new content. With perm 0
// an existing file keeps its mode and a new one gets DefaultFilePerm.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	if perm == 0 {
		perm = DefaultFilePerm
		if info, err := os.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ruleranger-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true
	return nil
}

// Marshal encodes v in the named format ("yaml", "yml", "toml" or "json",
// with or without a leading dot). The result ends in a newline.
func Marshal(format string, v any) (data []byte, err error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		// yaml.Marshal panics on unmarshalable types
		defer func() {
			if r := recover(); r != nil {
				data, err = nil, errors.Newf("marshaling YAML: %v", r)
			}
		}()
		data, err = yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling YAML")
		}
	case "toml":
		data, err = toml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling TOML")
		}
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
	default:
		return nil, errors.Newf("unsupported format %q", format)
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// AtomicWrite encodes v in the format given by the extension of path and
// writes it with AtomicWriteFile, keeping the mode of an existing file.
func AtomicWrite(path string, v any) error {
	return AtomicWriteAs(path, filepath.Ext(path), v)
}

// AtomicWriteAs is AtomicWrite with an explicit format.
func AtomicWriteAs(path, format string, v any) error {
	data, err := Marshal(format, v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, 0)
}
