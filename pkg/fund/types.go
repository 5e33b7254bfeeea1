package fund

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the access role assigned to a user. Unknown values are rejected
// at data-load time rather than compared ad hoc at the call sites.
type Role string

// Known roles.
const (
	RoleAdmin     Role = "ADMIN"
	RoleClient    Role = "CLIENT"
	RoleConsultor Role = "CONSULTOR"
)

// ParseRole validates a role string against the closed set of known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleConsultor:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Transaction types recorded in the ledger.
const (
	TypeOpening      = "APERTURA"
	TypeCancellation = "CANCELACION"
)

// Notification delivery methods.
const (
	NotifyEmail = "email"
	NotifySMS   = "sms"
)

// Fund is a subscribable fund. Reference data: seeded once, never mutated.
type Fund struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// Min is the minimum subscription amount in COP.
	Min int64 `json:"min"`
}

// PortfolioItem links a user to a fund they are subscribed to. The fund
// name is denormalized at subscription time so the link survives on its own.
type PortfolioItem struct {
	ID       string    `json:"id"`
	FundID   string    `json:"fundId"`
	FundName string    `json:"fundName"`
	Amount   int64     `json:"amount"`
	Date     time.Time `json:"date"`
}

// User is an account holder. Password is stored in the document but must
// never leave the service: every outbound projection goes through Redacted.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	// Balance is the available balance in COP.
	Balance   int64           `json:"balance"`
	Role      Role            `json:"role"`
	Portfolio []PortfolioItem `json:"portfolio"`
}

// Redacted returns a copy of the user safe to hand outside the service.
// The password is cleared and the portfolio slice is independent.
func (u User) Redacted() User {
	out := u
	out.Password = ""
	out.Portfolio = make([]PortfolioItem, len(u.Portfolio))
	copy(out.Portfolio, u.Portfolio)
	return out
}

// Transaction is one entry in the append-only ledger.
type Transaction struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Type     string    `json:"type"`
	FundID   string    `json:"fundId"`
	FundName string    `json:"fundName"`
	Amount   int64     `json:"amount"`
	Date     time.Time `json:"date"`
	// NotifyMethod is set on APERTURA transactions only.
	NotifyMethod string `json:"notifyMethod,omitempty"`
}

// Notification records the most recent subscription notification intent.
// The service only writes this slot; dispatch is the caller's concern.
type Notification struct {
	To      string `json:"to"`
	Method  string `json:"method"`
	Message string `json:"message"`
}

// Document is the entire datastore: one denormalized record persisted and
// rewritten as a single JSON blob on every mutation.
type Document struct {
	Users            []User        `json:"users"`
	Funds            []Fund        `json:"funds"`
	Transactions     []Transaction `json:"transactions"`
	LastNotification *Notification `json:"lastNotification,omitempty"`
}

// FindUser returns a pointer into the document's user slice, or nil.
func (d *Document) FindUser(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindFund returns a pointer into the document's fund slice, or nil.
func (d *Document) FindFund(id string) *Fund {
	for i := range d.Funds {
		if d.Funds[i].ID == id {
			return &d.Funds[i]
		}
	}
	return nil
}

// Validate checks the document's internal consistency: unique IDs, known
// roles, non-negative balances, and positive fund minimums. A persisted
// document that fails validation is treated as corrupt by the service.
func (d *Document) Validate() error {
	userIDs := make(map[string]struct{}, len(d.Users))
	for i, u := range d.Users {
		if u.ID == "" {
			return fmt.Errorf("user at index %d has no id", i)
		}
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		userIDs[u.ID] = struct{}{}
		if !u.Role.Valid() {
			return fmt.Errorf("user %q: unknown role %q", u.ID, u.Role)
		}
		if u.Balance < 0 {
			return fmt.Errorf("user %q: negative balance %d", u.ID, u.Balance)
		}
	}

	fundIDs := make(map[string]struct{}, len(d.Funds))
	for i, f := range d.Funds {
		if f.ID == "" {
			return fmt.Errorf("fund at index %d has no id", i)
		}
		if _, dup := fundIDs[f.ID]; dup {
			return fmt.Errorf("duplicate fund id %q", f.ID)
		}
		fundIDs[f.ID] = struct{}{}
		if f.Min <= 0 {
			return fmt.Errorf("fund %q: minimum must be positive, got %d", f.ID, f.Min)
		}
	}

	for _, t := range d.Transactions {
		if t.Type != TypeOpening && t.Type != TypeCancellation {
			return fmt.Errorf("transaction %q: unknown type %q", t.ID, t.Type)
		}
	}

	return nil
}

// Clone returns a deep copy of the document via a JSON round trip.
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
