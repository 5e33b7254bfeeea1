// Package id is the canonical source for identifier generation across the
// codebase. Entities in the persisted document use UUID v4 strings, matching
// the IDs the seed dataset ships with.
package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a random UUID v4 string. Used for portfolio links and
// ledger transactions.
func New() string {
	return uuid.NewString()
}

// Short returns a 16-character random hex ID. Suitable for log
// correlation where brevity matters.
func Short() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
