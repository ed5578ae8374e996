package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path points to a directory
// instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements env.Fetcher for a single file on the filesystem.
type Fetcher struct {
	filepath string
}

// NewFetcher creates a Fetcher for the given path. The path is cleaned
// immediately; the file itself is not touched until Fetch.
func NewFetcher(fpath string) *Fetcher {
	return &Fetcher{filepath: filepath.Clean(fpath)}
}

// Fetch reads the file and returns its contents as a string.
func (f *Fetcher) Fetch() (string, error) {
	stat, err := os.Stat(f.filepath)
	if err != nil {
		return "", fmt.Errorf("stat file %q: %w", f.filepath, err)
	}

	if stat.IsDir() {
		return "", fmt.Errorf("path %q: %w", f.filepath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(f.filepath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return "", fmt.Errorf("reading file %q: %w", f.filepath, err)
	}

	return string(data), nil
}
