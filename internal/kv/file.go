package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lightningx004/habit-antigravity/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// FileStore persists each key as <key>.json inside a private data
// directory. Writes are atomic and keep a best-effort .bak of the previous
// contents.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory backing this store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the stored value for key. A missing file is reported as
// ok=false, not an error.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return data, true, nil
}

// Set atomically replaces the value for key, backing up the previous file
// contents first.
func (s *FileStore) Set(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, value, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// GetBackup reads the .bak sibling written by the last Set, if any.
func (s *FileStore) GetBackup(key string) ([]byte, bool) {
	path, err := s.path(key)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(path + ".bak")
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
