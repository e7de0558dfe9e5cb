package staging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore keeps each document as a file in a single staging directory.
// Writes go through a temp file and rename so a reader never observes a
// partially written document.
type FSStore struct {
	dir string
}

// NewFSStore creates the staging directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FSStore) Get(_ context.Context, name string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return raw, err
}

func (s *FSStore) Put(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("stage %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("stage %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}

func (s *FSStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
