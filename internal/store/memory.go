package store

import (
	"context" // Context for store interface parity
	"sort"    // Ordering transaction listings
	"strings" // Case-insensitive matching
	"sync"    // Guarding the maps

	"privypay/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// Memory implements Store on in-process maps. It exists for tests and for
// running the server without a mongod (STORE_DRIVER=memory); it enforces the
// same unique constraints the Mongo indexes do. Documents are copied on every
// read and write so callers never share memory with the store, matching the
// decode-into-a-fresh-struct behavior of the real driver.
type Memory struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
	txs   []domain.Transaction
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{users: make(map[primitive.ObjectID]domain.User)}
}

// FindUserByEmail returns the user with the given email
func (m *Memory) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// FindUserByID returns the user with the given ID
func (m *Memory) FindUserByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

// FindUserByWallet returns the user owning the given wallet address
func (m *Memory) FindUserByWallet(_ context.Context, address string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.WalletAddress != "" && u.WalletAddress == address {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// SearchUsers matches query case-insensitively over fullName and email
func (m *Memory) SearchUsers(_ context.Context, query string, exclude primitive.ObjectID) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	var out []domain.User
	for _, u := range m.users {
		if u.ID == exclude {
			continue
		}
		if strings.Contains(strings.ToLower(u.FullName), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, *copyUser(u))
		}
	}
	// Deterministic order for tests
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// InsertUser creates a new user, enforcing email and wallet uniqueness
func (m *Memory) InsertUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
		if user.WalletAddress != "" && u.WalletAddress == user.WalletAddress {
			return ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = *copyUser(*user)
	return nil
}

// ReplaceUser saves the whole user document by ID, enforcing the same email
// and wallet uniqueness the Mongo indexes reject a replace for
func (m *Memory) ReplaceUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
		if user.WalletAddress != "" && u.WalletAddress == user.WalletAddress {
			return ErrDuplicateKey
		}
	}
	m.users[user.ID] = *copyUser(*user)
	return nil
}

// InsertTransaction creates a new transaction, enforcing hash uniqueness
func (m *Memory) InsertTransaction(_ context.Context, tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.txs {
		if t.Hash == tx.Hash {
			return ErrDuplicateKey
		}
	}
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	m.txs = append(m.txs, *tx)
	return nil
}

// ListTransactions returns transactions submitted by the user or addressed to
// the wallet, newest first
func (m *Memory) ListTransactions(_ context.Context, userID primitive.ObjectID, wallet string) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range m.txs {
		if t.UserID == userID || (wallet != "" && t.To == wallet) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// Ping always succeeds
func (m *Memory) Ping(_ context.Context) error { return nil }

// copyUser deep-copies a user so callers cannot mutate stored state
func copyUser(u domain.User) *domain.User {
	c := u
	c.Friends = append([]primitive.ObjectID(nil), u.Friends...)
	c.ReceivedInvites = append([]domain.Invite(nil), u.ReceivedInvites...)
	c.SentInvites = append([]domain.Invite(nil), u.SentInvites...)
	return &c
}

// Compile-time interface checks
var (
	_ Store = (*Memory)(nil)
	_ Store = (*Mongo)(nil)
)
