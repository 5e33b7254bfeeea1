// Package store defines the persistence slot the data service reads and
// writes: a synchronous byte-blob store addressed by a single fixed slot.
// The service owns serialization, seeding, and corruption recovery; a Slot
// only moves opaque bytes.
package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("store: slot is empty")

// Slot is a single-value blob store holding the serialized document.
type Slot interface {
	// Get returns the stored blob, or ErrNotFound if nothing was stored yet.
	Get() ([]byte, error)

	// Set overwrites the stored blob.
	Set(data []byte) error
}

// MemorySlot is an in-memory Slot for tests and ephemeral runs.
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Get returns a copy of the stored blob.
func (s *MemorySlot) Get() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Set stores a copy of the given blob.
func (s *MemorySlot) Set(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Clear empties the slot, as if it had never been written.
func (s *MemorySlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
}
