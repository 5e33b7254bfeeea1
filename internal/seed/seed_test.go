package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	assert.Len(t, doc.Funds, 5)
	assert.NotEmpty(t, doc.Users)
	assert.Empty(t, doc.Transactions)
	require.NoError(t, doc.Validate())

	for _, u := range doc.Users {
		assert.Equal(t, int64(500000), u.Balance)
		assert.Empty(t, u.Portfolio)
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)

	a.Users[0].Balance = 0
	a.Funds[0].Min = -1

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, int64(500000), b.Users[0].Balance)
	assert.Equal(t, int64(75000), b.Funds[0].Min)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, raw, 0600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Funds, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidDataset(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"users": [`},
		{"unknown role", `{"users":[{"id":"u1","role":"SUPERUSER","balance":0,"portfolio":[]}],"funds":[],"transactions":[]}`},
		{"negative balance", `{"users":[{"id":"u1","role":"CLIENT","balance":-5,"portfolio":[]}],"funds":[],"transactions":[]}`},
		{"zero fund minimum", `{"users":[],"funds":[{"id":"f1","name":"X","category":"FPV","min":0}],"transactions":[]}`},
		{"duplicate user id", `{"users":[{"id":"u1","role":"CLIENT","balance":0,"portfolio":[]},{"id":"u1","role":"CLIENT","balance":0,"portfolio":[]}],"funds":[],"transactions":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
