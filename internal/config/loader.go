package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the project file looked up by Find.
const FileName = "jsonui.hcl"

// ErrNotFound is returned by Find when no project file exists between the
// start directory and the filesystem root.
var ErrNotFound = errors.New("project file not found")

// Loader is the interface for a format-specific project file loader.
type Loader interface {
	// Load reads the project file at path and returns the model with
	// defaults applied and directories made absolute.
	Load(ctx context.Context, path string) (*Model, error)
}

// Find walks upward from start looking for FileName.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve '%s': %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched upward from %s", ErrNotFound, start)
		}
		dir = parent
	}
}
