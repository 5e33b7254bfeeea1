// Package seed supplies the dataset used to hydrate an empty or corrupt
// persistence slot: a handful of users (one per role), the five
// subscribable funds, and an empty transaction ledger.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/getfondo/fondod/pkg/fund"
)

//go:embed seed.json
var raw []byte

// Default returns a fresh copy of the embedded seed dataset. Each call
// decodes anew, so callers can mutate the result freely.
func Default() (*fund.Document, error) {
	return decode(raw, "embedded seed")
}

// Load reads a seed dataset from an external JSON file. Used when a
// deployment wants its own users and funds instead of the embedded set.
func Load(path string) (*fund.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return decode(data, path)
}

// FromFile returns a seed function bound to an external file, suitable
// for service wiring.
func FromFile(path string) func() (*fund.Document, error) {
	return func() (*fund.Document, error) {
		return Load(path)
	}
}

// Raw returns the embedded seed dataset as JSON. Used by the CLI to
// write a starter seed file a deployment can edit.
func Raw() []byte {
	return append([]byte(nil), raw...)
}

func decode(data []byte, source string) (*fund.Document, error) {
	var doc fund.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed dataset in %s: %w", source, err)
	}
	return &doc, nil
}
