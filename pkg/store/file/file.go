// Package file provides a file-backed persistence slot. The document blob
// is kept in a single JSON file and replaced atomically on every write.
package file

import (
	"os"
	"path/filepath"

	"github.com/getfondo/fondod/pkg/store"
)

// Slot stores the document blob in one file on disk.
type Slot struct {
	path string
}

// New creates a file-backed slot at the given path. The file and its
// parent directories are created lazily on the first Set.
func New(path string) *Slot {
	return &Slot{path: path}
}

// Path returns the backing file path.
func (s *Slot) Path() string {
	return s.path
}

// Get reads the stored blob. A missing or empty file reads as
// store.ErrNotFound so the service reseeds it.
func (s *Slot) Get() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// Set replaces the stored blob using a temp-file write and rename, so a
// crash mid-write never leaves a truncated document behind.
func (s *Slot) Set(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
