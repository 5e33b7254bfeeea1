package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/getfondo/fondod/internal/id"
	"github.com/getfondo/fondod/internal/seed"
	"github.com/getfondo/fondod/pkg/fund"
	"github.com/getfondo/fondod/pkg/logging"
	"github.com/getfondo/fondod/pkg/store"
)

// DefaultPageLimit is the page size for transaction history when the
// caller does not supply one.
const DefaultPageLimit = 10

// SeedFunc produces a fresh document used to hydrate an empty or corrupt
// slot. Each call must return an independently mutable copy.
type SeedFunc func() (*fund.Document, error)

// Service is the sole reader and mutator of the persisted document. Every
// operation loads the whole document from the slot, validates, mutates an
// in-memory copy, and writes the whole document back. A process-wide mutex
// serializes calls so concurrent callers cannot clobber each other's
// writes; there is no finer-grained locking because there is no finer-
// grained persistence.
type Service struct {
	mu    sync.Mutex
	slot  store.Slot
	seed  SeedFunc
	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSeed overrides the seed dataset used to hydrate the slot.
func WithSeed(f SeedFunc) Option {
	return func(s *Service) { s.seed = f }
}

// WithClock overrides the timestamp source. Tests use a stepping clock to
// get deterministic transaction ordering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides the ID generator.
func WithIDFunc(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a Service over the given persistence slot.
func New(slot store.Slot, opts ...Option) *Service {
	s := &Service{
		slot:  slot,
		seed:  seed.Default,
		now:   time.Now,
		newID: id.New,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubscriptionResult is returned by Subscribe and Unsubscribe.
type SubscriptionResult struct {
	Success bool      `json:"success"`
	TxID    string    `json:"txId"`
	User    fund.User `json:"user"`
}

// TransactionsPage is one page of a user's transaction history.
type TransactionsPage struct {
	Transactions []fund.Transaction `json:"transactions"`
	Total        int                `json:"total"`
}

// load reads and decodes the current document. An empty slot, an
// undecodable blob, or a blob failing validation all hydrate from the
// seed: corruption is swallowed and logged, never surfaced to the caller.
func (s *Service) load() (*fund.Document, error) {
	raw, err := s.slot.Get()
	switch {
	case err == nil:
		var doc fund.Document
		if uerr := json.Unmarshal(raw, &doc); uerr != nil {
			s.log.Warn("persisted document is corrupt, reseeding", "error", uerr)
		} else if verr := doc.Validate(); verr != nil {
			s.log.Warn("persisted document failed validation, reseeding", "error", verr)
		} else {
			return &doc, nil
		}
	case errors.Is(err, store.ErrNotFound):
		// First access: hydrate below.
	default:
		return nil, err
	}

	doc, err := s.seed()
	if err != nil {
		return nil, fmt.Errorf("seed document: %w", err)
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// save encodes and writes the whole document back to the slot.
func (s *Service) save(doc *fund.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return s.slot.Set(raw)
}

// Login scans users for an exact email and password match and returns the
// matched user without the password. Read-only.
func (s *Service) Login(email, password string) (fund.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return fund.User{}, err
	}

	for i := range doc.Users {
		u := &doc.Users[i]
		if u.Email == email && u.Password == password {
			return u.Redacted(), nil
		}
	}
	return fund.User{}, &InvalidCredentialsError{}
}

// ListUsers returns all users in insertion order, passwords stripped.
func (s *Service) ListUsers() ([]fund.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	users := make([]fund.User, len(doc.Users))
	for i, u := range doc.Users {
		users[i] = u.Redacted()
	}
	return users, nil
}

// ListFunds returns the fund reference data in insertion order.
func (s *Service) ListFunds() ([]fund.Fund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	funds := make([]fund.Fund, len(doc.Funds))
	copy(funds, doc.Funds)
	return funds, nil
}

// ChangePassword overwrites the user's password unconditionally. There is
// no old-password verification or strength check; this is a mock.
func (s *Service) ChangePassword(userID, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	u := doc.FindUser(userID)
	if u == nil {
		return &NotFoundError{Entity: "user", ID: userID}
	}

	u.Password = newPassword
	return s.save(doc)
}

// EditUser overwrites the stored user's name, email, and phone with the
// fields from the input. Balance, role, and portfolio on the input are
// ignored; those change only through their own operations.
func (s *Service) EditUser(in fund.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	u := doc.FindUser(in.ID)
	if u == nil {
		return &NotFoundError{Entity: "user", ID: in.ID}
	}

	u.Name = in.Name
	u.Email = in.Email
	u.Phone = in.Phone
	return s.save(doc)
}

// Subscribe opens a subscription: it debits the user's balance, appends a
// portfolio link and an APERTURA ledger entry, and overwrites the
// last-notification slot. Validation happens before any mutation, so a
// failed call leaves the persisted document untouched.
//
// notifyMethod is "email" (default when empty) or "sms" and selects the
// notification target address.
func (s *Service) Subscribe(userID, fundID string, amount int64, notifyMethod string) (SubscriptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch notifyMethod {
	case "":
		notifyMethod = fund.NotifyEmail
	case fund.NotifyEmail, fund.NotifySMS:
	default:
		return SubscriptionResult{}, &ValidationError{
			Message: fmt.Sprintf("unknown notify method %q", notifyMethod),
		}
	}

	doc, err := s.load()
	if err != nil {
		return SubscriptionResult{}, err
	}

	u := doc.FindUser(userID)
	f := doc.FindFund(fundID)
	if u == nil || f == nil {
		return SubscriptionResult{}, &NotFoundError{Entity: "user or fund"}
	}

	for _, item := range u.Portfolio {
		if item.FundID == fundID {
			return SubscriptionResult{}, &AlreadySubscribedError{FundName: f.Name}
		}
	}
	if amount < f.Min {
		return SubscriptionResult{}, &MinimumAmountError{FundName: f.Name, Min: f.Min}
	}
	if u.Balance < amount {
		return SubscriptionResult{}, &InsufficientBalanceError{FundName: f.Name}
	}

	now := s.now().UTC()
	txID := s.newID()

	u.Balance -= amount
	u.Portfolio = append(u.Portfolio, fund.PortfolioItem{
		ID:       s.newID(),
		FundID:   f.ID,
		FundName: f.Name,
		Amount:   amount,
		Date:     now,
	})

	doc.Transactions = append(doc.Transactions, fund.Transaction{
		ID:           txID,
		UserID:       userID,
		Type:         fund.TypeOpening,
		FundID:       f.ID,
		FundName:     f.Name,
		Amount:       amount,
		Date:         now,
		NotifyMethod: notifyMethod,
	})

	to := u.Email
	if notifyMethod == fund.NotifySMS {
		to = u.Phone
	}
	doc.LastNotification = &fund.Notification{
		To:      to,
		Method:  notifyMethod,
		Message: fmt.Sprintf("Suscripción al fondo %s realizada.", f.Name),
	}

	if err := s.save(doc); err != nil {
		return SubscriptionResult{}, err
	}

	s.log.Info("fund subscription opened",
		"user", userID, "fund", f.Name, "amount", amount, "tx", txID)
	return SubscriptionResult{Success: true, TxID: txID, User: u.Redacted()}, nil
}

// Unsubscribe cancels the user's subscription to a fund: it removes the
// portfolio link, credits its amount back to the balance, and appends a
// CANCELACION ledger entry carrying the link's denormalized fund name.
func (s *Service) Unsubscribe(userID, fundID string) (SubscriptionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return SubscriptionResult{}, err
	}

	u := doc.FindUser(userID)
	if u == nil {
		return SubscriptionResult{}, &NotFoundError{Entity: "user", ID: userID}
	}

	idx := -1
	for i, item := range u.Portfolio {
		if item.FundID == fundID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return SubscriptionResult{}, &NotSubscribedError{FundID: fundID}
	}

	link := u.Portfolio[idx]
	u.Portfolio = append(u.Portfolio[:idx], u.Portfolio[idx+1:]...)
	u.Balance += link.Amount

	txID := s.newID()
	doc.Transactions = append(doc.Transactions, fund.Transaction{
		ID:       txID,
		UserID:   userID,
		Type:     fund.TypeCancellation,
		FundID:   fundID,
		FundName: link.FundName,
		Amount:   link.Amount,
		Date:     s.now().UTC(),
	})

	if err := s.save(doc); err != nil {
		return SubscriptionResult{}, err
	}

	s.log.Info("fund subscription cancelled",
		"user", userID, "fund", link.FundName, "amount", link.Amount, "tx", txID)
	return SubscriptionResult{Success: true, TxID: txID, User: u.Redacted()}, nil
}

// TransactionsForUser returns one page of the user's ledger entries,
// newest first. Total counts all matching entries regardless of paging.
// page below 1 reads as 1 and limit at or below 0 falls back to
// DefaultPageLimit; a page past the end yields an empty slice.
func (s *Service) TransactionsForUser(userID string, page, limit int) (TransactionsPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return TransactionsPage{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	matches := make([]fund.Transaction, 0, len(doc.Transactions))
	for _, t := range doc.Transactions {
		if t.UserID == userID {
			matches = append(matches, t)
		}
	}

	// Stable sort: equal timestamps keep their ledger insertion order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.After(matches[j].Date)
	})

	total := len(matches)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageSlice := make([]fund.Transaction, end-start)
	copy(pageSlice, matches[start:end])
	return TransactionsPage{Transactions: pageSlice, Total: total}, nil
}

// LastNotification returns a copy of the most recent subscription
// notification intent, or nil if none was produced yet. The service never
// reads this slot itself; it exists for external dispatch.
func (s *Service) LastNotification() (*fund.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if doc.LastNotification == nil {
		return nil, nil
	}
	n := *doc.LastNotification
	return &n, nil
}

// Reset discards the persisted document and rewrites the slot from the
// seed dataset.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.seed()
	if err != nil {
		return fmt.Errorf("seed document: %w", err)
	}
	return s.save(doc)
}
