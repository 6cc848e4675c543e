package source

import (
	"context"
	"os"
	"path/filepath"
)

// Dir reads resources from a local directory.
type Dir struct {
	root string
}

// NewDir creates a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Fetch reads path relative to the root directory.
func (d *Dir) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path)))
}

func (d *Dir) String() string {
	return d.root
}
