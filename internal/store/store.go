// Package store defines the document-store client the core operates against
// and its two drivers: MongoDB for production and an in-memory map for tests.
package store

import (
	"context" // Context for store operations
	"errors"  // Sentinel errors

	"privypay/internal/domain" // Importing domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// Failure signals every driver must map its own errors onto
var (
	ErrNotFound     = errors.New("store: document not found")    // No document matched
	ErrDuplicateKey = errors.New("store: duplicate key")         // Unique index violated
	ErrUnavailable  = errors.New("store: backing store timeout") // Timeout or connection failure
)

// Store is the collection-style client consumed by the core. There are no
// cross-document transactions: every method touches a single document, and
// callers are responsible for making dual-document sequences idempotent.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindUserByWallet(ctx context.Context, address string) (*domain.User, error)
	// SearchUsers matches query as a case-insensitive substring of fullName or
	// email, excluding the given user ID.
	SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID) ([]domain.User, error)
	// InsertUser assigns the ID and fails ErrDuplicateKey on an email or
	// wallet-address collision.
	InsertUser(ctx context.Context, user *domain.User) error
	// ReplaceUser saves the whole document by ID.
	ReplaceUser(ctx context.Context, user *domain.User) error
	// InsertTransaction assigns the ID and fails ErrDuplicateKey on a hash
	// collision.
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
	// ListTransactions returns transactions submitted by the user or addressed
	// to the wallet, newest first.
	ListTransactions(ctx context.Context, userID primitive.ObjectID, wallet string) ([]domain.Transaction, error)
	Ping(ctx context.Context) error
}
