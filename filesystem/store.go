// Package filesystem provides the directory backend for linkshelf listings.
// All access goes through an os.Root, so neither ".." nor a symlink can reach
// outside the configured base directory.
package filesystem

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/sagarc03/linkshelf"
)

// Store lists directories under a sandboxed root.
type Store struct {
	root *os.Root
}

// NewDirectoryStore creates a new Store with the given root directory.
func NewDirectoryStore(root *os.Root) *Store {
	return &Store{root: root}
}

// List returns the immediate children of relPath, classified and sorted by
// name. relPath is slash-separated and relative to the root; "." is the root
// itself. Returns linkshelf.ErrNotFound if relPath does not exist and
// linkshelf.ErrNotDirectory if it is not a directory.
func (s *Store) List(ctx context.Context, relPath string) ([]linkshelf.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if relPath == "" {
		relPath = "."
	}

	info, err := s.root.Stat(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, linkshelf.ErrNotFound
		}
		return nil, fmt.Errorf("stat directory: %w: %w", linkshelf.ErrFilesystem, err)
	}

	if !info.IsDir() {
		return nil, linkshelf.ErrNotDirectory
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), relPath)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w: %w", linkshelf.ErrFilesystem, err)
	}

	entries := make([]linkshelf.Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries = append(entries, linkshelf.Entry{
			Name: d.Name(),
			Path: path.Join(relPath, d.Name()),
			Kind: linkshelf.ClassifyMode(d.Type()),
		})
	}

	// Listings are ordered by name.
	slices.SortFunc(entries, func(a, b linkshelf.Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return entries, nil
}
