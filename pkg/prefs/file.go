package prefs

import (
	"os"
	"path/filepath"

	"github.com/Vinzor11/hrgrid/pkg/logger"
)

// FileBackend stores each preference key as its own JSON file under a
// directory. Writes are fire-and-forget full overwrites of one file; a crash
// between two writes can leave fragments inconsistent with each other, which
// is acceptable since each fragment is independently meaningful.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the directory if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBackend) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (f *FileBackend) Set(key string, value []byte) {
	if err := os.WriteFile(f.path(key), value, 0o644); err != nil {
		logger.Warn("failed to persist preference %q: %v", key, err)
	}
}

func (f *FileBackend) Delete(key string) {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to remove preference %q: %v", key, err)
	}
}
