package staging

import (
	"fmt"
	"os"
	"path/filepath"
)

// Open builds the configured staging backend. The sqlite backend keeps its
// database inside the staging directory.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "fs":
		return NewFSStore(dir)
	case "sqlite":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create staging dir: %w", err)
		}
		return NewSQLiteStore(filepath.Join(dir, "staging.db"))
	case "memory":
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown staging backend: %q", backend)
	}
}
