package manifest

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound indicates the manifest resource is missing. A missing manifest
// is fatal for the whole sync: no entries are processed.
var ErrNotFound = errors.New("manifest not found")

// Load reads and parses the manifest at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return entries, nil
}
