package core

import (
	"context" // Context for store operations
	"errors"  // Error inspection
	"time"    // Timestamps

	"privypay/internal/domain" // Importing domain models
	"privypay/internal/store"  // Store failure signals

	"github.com/sirupsen/logrus" // Logging library
)

// addMutualFriend establishes bidirectional friendship between two loaded user
// records. It is the only code that mutates a friends set. Both appends are
// membership-checked, so re-running after a partial failure converges instead
// of duplicating entries; callers persist the records afterwards.
func addMutualFriend(a, b *domain.User) {
	if a.HasFriend(b.ID) && b.HasFriend(a.ID) {
		return
	}
	a.AddFriend(b.ID)
	b.AddFriend(a.ID)
}

// resolvePendingInvitesFor accepts every pending invitation addressed to the
// user and befriends each inviter. This is how a shadow-invited user who later
// registers directly becomes friends with their inviter without visiting an
// accept screen. The user record is mutated in place; the caller persists it.
// Each inviter is persisted here, one write per inviter, every mutation
// idempotent.
func (s *Service) resolvePendingInvitesFor(ctx context.Context, user *domain.User) error {
	for i := range user.ReceivedInvites {
		inv := &user.ReceivedInvites[i]
		if inv.Status != domain.InviteStatusPending {
			continue
		}
		inv.Status = domain.InviteStatusAccepted

		inviter, err := s.store.FindUserByEmail(ctx, inv.Email)
		if errors.Is(err, store.ErrNotFound) {
			continue // Inviter vanished; the accepted record is still consistent
		}
		if err != nil {
			return storeErr(err)
		}
		addMutualFriend(inviter, user)
		if mirror := inviter.SentInviteTo(user.Email); mirror != nil {
			mirror.Status = domain.InviteStatusAccepted
		}
		inviter.UpdatedAt = time.Now().UTC()
		if err := s.store.ReplaceUser(ctx, inviter); err != nil {
			return storeErr(err)
		}
		logrus.WithFields(logrus.Fields{
			"user":    user.Email,    // Newly registered user
			"inviter": inviter.Email, // Resolved inviter
		}).Info("Pending invitation auto-accepted on registration")
	}
	return nil
}
