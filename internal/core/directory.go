package core

import (
	"context"  // Context for store operations
	"errors"   // Error inspection
	"net/mail" // Email address validation
	"strings"  // Normalization
	"time"     // Timestamps

	"privypay/internal/domain" // Importing domain models
	"privypay/internal/store"  // Store failure signals

	"github.com/ethereum/go-ethereum/common"     // Wallet address validation and checksumming
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// SearchResult is one row of a user search
type SearchResult struct {
	ID            primitive.ObjectID `json:"id"`            // User ID
	Name          string             `json:"name"`          // Display name
	Email         string             `json:"email"`         // Email
	WalletAddress string             `json:"walletAddress"` // Wallet address, may be empty
	IsFriend      bool               `json:"isFriend"`      // Whether the actor is already friends with this user
}

// FriendInfo is one row of a friends listing
type FriendInfo struct {
	ID            primitive.ObjectID `json:"id"`            // User ID
	Name          string             `json:"name"`          // Display name
	Email         string             `json:"email"`         // Email
	WalletAddress string             `json:"walletAddress"` // Wallet address, may be empty
}

// UserCheck is the registration-state probe used by the login flow
type UserCheck struct {
	Email         string `json:"email"`         // Email
	FullName      string `json:"fullName"`      // Display name, empty for a shadow record
	WalletAddress string `json:"walletAddress"` // Wallet address, empty for a shadow record
	HasFullName   bool   `json:"hasFullName"`   // Whether registration has completed
}

// normalizeEmail lowercases and validates an email address
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid("email is required")
	}
	// Only bare addresses are stored: a name-addr form like "bob <bob@x.com>"
	// would never match the bare email the invitee later registers with
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("invalid email address")
	}
	return email, nil
}

// normalizeWallet validates a hex wallet address and returns its checksummed
// form; an empty address stays empty (shadow records have no wallet)
func normalizeWallet(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", nil
	}
	if !common.IsHexAddress(address) {
		return "", invalid("invalid wallet address")
	}
	return common.HexToAddress(address).Hex(), nil
}

// RegisterOrUpdate creates or updates the user record for email. FullName is
// set unconditionally; the wallet address only when a non-empty value differs
// from the stored one, so a real address is never overwritten by an empty one.
// Any pending invitations addressed to this email are resolved as part of the
// same logical operation: a user completing registration must not be left with
// dangling invites.
func (s *Service) RegisterOrUpdate(ctx context.Context, email, fullName, walletAddress string) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, invalid("full name is required")
	}
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing record (possibly a shadow created by an invitation)
	case errors.Is(err, store.ErrNotFound):
		fresh := &domain.User{
			Email:           email,
			FullName:        fullName,
			WalletAddress:   wallet,
			Friends:         []primitive.ObjectID{},
			ReceivedInvites: []domain.Invite{},
			SentInvites:     []domain.Invite{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		ierr := s.store.InsertUser(ctx, fresh)
		if ierr == nil {
			return fresh, nil
		}
		if !errors.Is(ierr, store.ErrDuplicateKey) {
			return nil, storeErr(ierr)
		}
		// Lost a create race for the same email; retry as the update path
		user, err = s.store.FindUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			// The collision was the wallet index, not the email: another
			// account already owns this address
			return nil, &ConflictError{Msg: "wallet address already registered"}
		}
		if err != nil {
			return nil, storeErr(err)
		}
	default:
		return nil, storeErr(err)
	}

	user.FullName = fullName
	if wallet != "" && wallet != user.WalletAddress {
		user.WalletAddress = wallet
	}
	if err := s.resolvePendingInvitesFor(ctx, user); err != nil {
		return nil, err
	}
	user.UpdatedAt = now
	if err := s.store.ReplaceUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			// The wallet index rejected the update: another account already
			// owns this address
			return nil, &ConflictError{Msg: "wallet address already registered"}
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// FindByEmail returns the user record for email, or NotFoundError
func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// FindByWalletAddress returns the user owning the wallet, or NotFoundError
func (s *Service) FindByWalletAddress(ctx context.Context, address string) (*domain.User, error) {
	wallet, err := normalizeWallet(address)
	if err != nil {
		return nil, err
	}
	if wallet == "" {
		return nil, invalid("wallet address is required")
	}
	user, err := s.store.FindUserByWallet(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// CheckUser probes the registration state for email. A missing record returns
// (nil, nil): absence is a valid answer for the login flow, not an error.
func (s *Service) CheckUser(ctx context.Context, email string) (*UserCheck, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &UserCheck{
		Email:         user.Email,
		FullName:      user.FullName,
		WalletAddress: user.WalletAddress,
		HasFullName:   user.FullName != "",
	}, nil
}

// Search matches query case-insensitively against full names and emails,
// excluding the actor, and flags rows the actor is already friends with
func (s *Service) Search(ctx context.Context, query, actorEmail string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalid("query is required")
	}
	actor, err := s.FindByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	users, err := s.store.SearchUsers(ctx, strings.TrimSpace(query), actor.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, SearchResult{
			ID:            u.ID,
			Name:          u.FullName,
			Email:         u.Email,
			WalletAddress: u.WalletAddress,
			IsFriend:      actor.HasFriend(u.ID),
		})
	}
	return results, nil
}

// ListFriends returns the user's friends for display. Dangling friend IDs are
// skipped rather than failing the whole listing.
func (s *Service) ListFriends(ctx context.Context, email string) ([]FriendInfo, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	friends := make([]FriendInfo, 0, len(user.Friends))
	for _, id := range user.Friends {
		friend, err := s.store.FindUserByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeErr(err)
		}
		friends = append(friends, FriendInfo{
			ID:            friend.ID,
			Name:          friend.FullName,
			Email:         friend.Email,
			WalletAddress: friend.WalletAddress,
		})
	}
	return friends, nil
}
