package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/getfondo/fondod/pkg/store"
)

func TestSlot_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "data.json"))
	if _, err := s.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlot_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	s := New(path)
	if _, err := s.Get(); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty file, got %v", err)
	}
}

func TestSlot_SetGet(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "data.json"))

	blob := []byte(`{"users":[],"funds":[],"transactions":[]}`)
	if err := s.Set(blob); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("round trip mismatch: %q", got)
	}

	// Overwrite.
	if err := s.Set([]byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = s.Get()
	if string(got) != `{}` {
		t.Errorf("after overwrite got %q", got)
	}
}

func TestSlot_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "data.json")
	s := New(path)
	if err := s.Set([]byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backing file not created: %v", err)
	}
}

func TestSlot_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "data.json"))
	if err := s.Set([]byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}
