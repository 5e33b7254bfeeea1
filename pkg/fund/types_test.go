package fund

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"ADMIN", "CLIENT", "CONSULTOR"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), r)
		assert.True(t, r.Valid())
	}

	for _, s := range []string{"", "admin", "ROOT", "Client"} {
		_, err := ParseRole(s)
		assert.Error(t, err, "role %q should be rejected", s)
	}
}

func TestUserRedacted(t *testing.T) {
	u := User{
		ID:       "u1",
		Email:    "a@example.com",
		Password: "secret",
		Balance:  1000,
		Role:     RoleClient,
		Portfolio: []PortfolioItem{
			{ID: "p1", FundID: "f1", FundName: "FONDO", Amount: 500},
		},
	}

	r := u.Redacted()
	assert.Empty(t, r.Password)
	assert.Equal(t, u.Balance, r.Balance)
	require.Len(t, r.Portfolio, 1)

	// The copy's portfolio is independent of the original.
	r.Portfolio[0].Amount = 1
	assert.Equal(t, int64(500), u.Portfolio[0].Amount)
	assert.Equal(t, "secret", u.Password, "original keeps its password")
}

func TestRedactedUserOmitsPasswordInJSON(t *testing.T) {
	raw, err := json.Marshal(User{ID: "u1", Role: RoleClient}.Redacted())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestDocumentRoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{
		Users: []User{{
			ID: "u1", Name: "N", Email: "e@example.com", Password: "pw",
			Phone: "+57", Balance: 12345, Role: RoleClient,
			Portfolio: []PortfolioItem{{ID: "p1", FundID: "f1", FundName: "F", Amount: 10, Date: date}},
		}},
		Funds: []Fund{{ID: "f1", Name: "F", Category: "FPV", Min: 10}},
		Transactions: []Transaction{{
			ID: "t1", UserID: "u1", Type: TypeOpening, FundID: "f1",
			FundName: "F", Amount: 10, Date: date, NotifyMethod: NotifyEmail,
		}},
		LastNotification: &Notification{To: "e@example.com", Method: NotifyEmail, Message: "m"},
	}

	raw, err := json.Marshal(&doc)
	require.NoError(t, err)

	var back Document
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, doc, back, "serialization must be lossless")
}

func TestDocumentValidate(t *testing.T) {
	valid := Document{
		Users: []User{{ID: "u1", Role: RoleClient, Portfolio: []PortfolioItem{}}},
		Funds: []Fund{{ID: "f1", Name: "F", Min: 1}},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		doc  Document
	}{
		{"missing user id", Document{Users: []User{{Role: RoleClient}}}},
		{"unknown role", Document{Users: []User{{ID: "u1", Role: "ROOT"}}}},
		{"negative balance", Document{Users: []User{{ID: "u1", Role: RoleClient, Balance: -1}}}},
		{"duplicate user", Document{Users: []User{{ID: "u1", Role: RoleClient}, {ID: "u1", Role: RoleClient}}}},
		{"zero fund min", Document{Funds: []Fund{{ID: "f1", Min: 0}}}},
		{"duplicate fund", Document{Funds: []Fund{{ID: "f1", Min: 1}, {ID: "f1", Min: 1}}}},
		{"unknown tx type", Document{Transactions: []Transaction{{ID: "t1", Type: "TRASLADO"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.doc.Validate())
		})
	}
}

func TestDocumentClone(t *testing.T) {
	doc := Document{
		Users: []User{{ID: "u1", Role: RoleClient, Balance: 100, Portfolio: []PortfolioItem{}}},
		Funds: []Fund{{ID: "f1", Name: "F", Min: 1}},
	}

	clone, err := doc.Clone()
	require.NoError(t, err)
	clone.Users[0].Balance = 0
	assert.Equal(t, int64(100), doc.Users[0].Balance)
}

func TestFindHelpers(t *testing.T) {
	doc := Document{
		Users: []User{{ID: "u1", Role: RoleClient}},
		Funds: []Fund{{ID: "f1", Min: 1}},
	}

	require.NotNil(t, doc.FindUser("u1"))
	assert.Nil(t, doc.FindUser("u2"))
	require.NotNil(t, doc.FindFund("f1"))
	assert.Nil(t, doc.FindFund("f2"))

	// FindUser returns a pointer into the document, so edits stick.
	doc.FindUser("u1").Balance = 42
	assert.Equal(t, int64(42), doc.Users[0].Balance)
}

func TestFormatCOP(t *testing.T) {
	// Colombian convention: dot thousands separator, comma decimals.
	assert.Equal(t, "$75.000,00", FormatCOP(75000))
	assert.Equal(t, "$0,00", FormatCOP(0))
}
