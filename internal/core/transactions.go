package core

import (
	"context" // Context for store operations
	"errors"  // Error inspection
	"regexp"  // Amount validation
	"strings" // Normalization
	"time"    // Timestamps

	"privypay/internal/domain" // Importing domain models
	"privypay/internal/store"  // Store failure signals

	"github.com/sirupsen/logrus" // Logging library
)

// Display fallbacks for wallets that resolve to no known user
const (
	unknownName  = "Unknown User"
	unknownEmail = "Unknown"
)

// Amounts are decimal strings; money never travels as a float
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// RecordTransaction appends a completed on-chain transfer to the history. The
// sender wallet must belong to a known user; the recipient may be external.
// The hash is unique, so a double submission surfaces as ConflictError rather
// than double-counting.
func (s *Service) RecordTransaction(ctx context.Context, from, to, amount, token, hash string) (*domain.EnrichedTransaction, error) {
	from, err := normalizeWallet(from)
	if err != nil || from == "" {
		return nil, invalid("invalid sender wallet address")
	}
	to, err = normalizeWallet(to)
	if err != nil || to == "" {
		return nil, invalid("invalid recipient wallet address")
	}
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return nil, invalid("amount must be a decimal string")
	}
	token = strings.TrimSpace(token)
	hash = strings.TrimSpace(hash)
	if token == "" || hash == "" {
		return nil, invalid("token and hash are required")
	}

	sender, err := s.store.FindUserByWallet(ctx, from)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("sender")
	}
	if err != nil {
		return nil, storeErr(err)
	}

	tx := &domain.Transaction{
		From:      from,
		To:        to,
		Amount:    amount,
		Token:     token,
		Hash:      hash,
		Timestamp: time.Now().UTC(),
		UserID:    sender.ID,
	}
	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, &ConflictError{Msg: "transaction hash already recorded"}
		}
		return nil, storeErr(err)
	}
	logrus.WithFields(logrus.Fields{
		"user":   sender.Email, // Submitting user
		"from":   from,         // Sender wallet
		"to":     to,           // Recipient wallet
		"amount": amount,       // Decimal amount
		"token":  token,        // Token symbol
		"hash":   hash,         // On-chain hash
	}).Info("Transaction recorded")

	enriched := s.enrich(ctx, *tx, map[string]*domain.User{from: sender})
	return &enriched, nil
}

// ListTransactions returns the user's history newest first: every transfer
// they submitted plus every transfer addressed to their wallet, each joined
// with counterparty identity at read time.
func (s *Service) ListTransactions(ctx context.Context, userEmail string) ([]domain.EnrichedTransaction, error) {
	user, err := s.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, user.ID, user.WalletAddress)
	if err != nil {
		return nil, storeErr(err)
	}
	// One lookup per distinct wallet, not per transaction
	owners := map[string]*domain.User{}
	if user.WalletAddress != "" {
		owners[user.WalletAddress] = user
	}
	enriched := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		enriched = append(enriched, s.enrich(ctx, tx, owners))
	}
	return enriched, nil
}

// enrich joins a transaction with the display identity of both wallets,
// memoizing lookups in owners. Unresolvable wallets get the fallbacks.
func (s *Service) enrich(ctx context.Context, tx domain.Transaction, owners map[string]*domain.User) domain.EnrichedTransaction {
	e := domain.EnrichedTransaction{
		Transaction: tx,
		FromName:    unknownName,
		FromEmail:   unknownEmail,
		ToName:      unknownName,
		ToEmail:     unknownEmail,
	}
	if owner := s.ownerOf(ctx, tx.From, owners); owner != nil {
		e.FromName, e.FromEmail = owner.FullName, owner.Email
	}
	if owner := s.ownerOf(ctx, tx.To, owners); owner != nil {
		e.ToName, e.ToEmail = owner.FullName, owner.Email
	}
	return e
}

// ownerOf resolves a wallet to its user, caching the result (including misses)
func (s *Service) ownerOf(ctx context.Context, wallet string, owners map[string]*domain.User) *domain.User {
	if wallet == "" {
		return nil
	}
	if owner, seen := owners[wallet]; seen {
		return owner
	}
	owner, err := s.store.FindUserByWallet(ctx, wallet)
	if err != nil {
		owner = nil // Best-effort join; display falls back to Unknown User
	}
	owners[wallet] = owner
	return owner
}
