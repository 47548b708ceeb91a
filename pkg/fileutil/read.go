package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// MaxFileSize is the largest asset descriptor the hosts will read.
const MaxFileSize = 1 << 20

// ErrFileTooLarge matches errors for files over the read limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadFileWithLimit reads a descriptor of at most MaxFileSize bytes.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadFileLimit(path, MaxFileSize)
}

// ReadFileLimit reads path, failing with ErrFileTooLarge when it holds more
// than limit bytes. The size is checked again while reading, since the file
// may grow after Stat.
func ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	tooLarge := func() error {
		return errors.WithDetailf(errors.Wrapf(ErrFileTooLarge, "%s", path),
			"descriptors are limited to %d bytes", limit)
	}

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge()
	}
	return data, nil
}
