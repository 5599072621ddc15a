package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads artifacts from a local directory.
type FileSource struct {
	dir string
}

// NewFileSource returns a FileSource rooted at dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("file source: %q is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

// Fetch reads dir/name. Names may not escape the directory.
func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("file source: artifact name %q escapes %s", name, s.dir)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("file source: read %q: %w", name, err)
	}
	return data, nil
}

func (s *FileSource) Close() error { return nil }
