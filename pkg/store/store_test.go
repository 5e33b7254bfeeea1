package store

import (
	"errors"
	"testing"
)

func TestMemorySlot_EmptyGet(t *testing.T) {
	s := NewMemorySlot()
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemorySlot_SetGet(t *testing.T) {
	s := NewMemorySlot()
	if err := s.Set([]byte(`{"users":[]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"users":[]}` {
		t.Errorf("got %q", got)
	}

	// Overwrite replaces the previous value entirely.
	if err := s.Set([]byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = s.Get()
	if string(got) != `{}` {
		t.Errorf("after overwrite got %q", got)
	}
}

func TestMemorySlot_CopiesData(t *testing.T) {
	s := NewMemorySlot()
	in := []byte("abc")
	_ = s.Set(in)
	in[0] = 'z'

	got, _ := s.Get()
	if string(got) != "abc" {
		t.Errorf("slot shares memory with caller: %q", got)
	}

	got[0] = 'z'
	again, _ := s.Get()
	if string(again) != "abc" {
		t.Errorf("slot shares memory with reader: %q", again)
	}
}

func TestMemorySlot_Clear(t *testing.T) {
	s := NewMemorySlot()
	_ = s.Set([]byte("x"))
	s.Clear()
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after Clear, got %v", err)
	}
}
