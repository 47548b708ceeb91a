package host

import (
	"bytes"
	"cmp"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/pkg/fileutil"
)

// Format is a descriptor file encoding.
type Format string

// Supported descriptor formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the descriptor format for a file name, by extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// Decode parses a descriptor. The returned asset has no path.
func Decode(format Format, data []byte) (*asset.Asset, error) {
	var a asset.Asset
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &a)
	case FormatTOML:
		err = toml.Unmarshal(data, &a)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&a)
	default:
		return nil, errors.Newf("unsupported descriptor format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s descriptor", format)
	}
	if a.Class == "" {
		return nil, errors.New("descriptor has no class")
	}
	return &a, nil
}

// writeDescriptor atomically writes an asset to path in the given format.
func writeDescriptor(path string, format Format, a *asset.Asset) error {
	return fileutil.AtomicWriteAs(path, string(format), a)
}

func sortDescriptorErrors(errs []*DescriptorError) {
	slices.SortFunc(errs, func(a, b *DescriptorError) int {
		return cmp.Compare(a.File, b.File)
	})
}
