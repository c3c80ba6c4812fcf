package dir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gastos/internal/source"
)

// Source reads dataset objects from a local folder, typically the docs/data
// folder written by the publishing pipeline.
type Source struct {
	root string
}

var _ source.Reader = (*Source)(nil)

func New(root string) *Source {
	return &Source{root: filepath.Clean(root)}
}

// Root returns the folder being read.
func (s *Source) Root() string { return s.root }

func (s *Source) Describe() string { return "dir:" + s.root }

// Open opens root/name. Names must be clean relative slash paths.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !source.ValidName(name) {
		return nil, fmt.Errorf("dir %s: invalid object name: %w", name, source.ErrNotExist)
	}
	path := filepath.Join(s.root, filepath.FromSlash(name))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dir %s: %w", name, source.ErrNotExist)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("dir %s: is a directory: %w", name, source.ErrNotExist)
	}
	return f, nil
}

// Name maps a file path under root back to its object name. ok is false for
// paths outside root.
func (s *Source) Name(path string) (name string, ok bool) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !source.ValidName(rel) {
		return "", false
	}
	return rel, true
}
