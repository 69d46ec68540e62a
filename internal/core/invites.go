package core

import (
	"context" // Context for store operations
	"errors"  // Error inspection
	"strings" // Normalization
	"time"    // Timestamps

	"privypay/internal/domain" // Importing domain models
	"privypay/internal/mail"   // Invitation email
	"privypay/internal/store"  // Store failure signals

	"github.com/sirupsen/logrus"                 // Logging library
	"go.mongodb.org/mongo-driver/bson/primitive" // MongoDB object IDs
)

// Invitation outcomes. The idempotent outcomes are successes, not errors:
// from the caller's perspective nothing went wrong.
const (
	OutcomeSent           = "sent"            // A new pending invitation was created
	OutcomeAlreadyFriends = "already_friends" // The parties are already friends
	OutcomeAlreadyInvited = "already_invited" // A pending invitation for the pair already exists
)

// InvitationResult reports what CreateInvitation did
type InvitationResult struct {
	Outcome      string         `json:"outcome"`                // One of the outcome constants
	Message      string         `json:"message"`                // Human-readable summary
	Invite       *domain.Invite `json:"invite,omitempty"`       // The sent-side record when created
	EmailWarning string         `json:"emailWarning,omitempty"` // Set when the notification email failed
}

// InvitationList is both sides of a user's invitation ledger
type InvitationList struct {
	Received []domain.Invite `json:"received"` // Invites addressed to the user
	Sent     []domain.Invite `json:"sent"`     // Invites the user sent
}

// CreateInvitation invites inviteeEmail on behalf of inviterEmail. Guards run
// in order and short-circuit: inviter must exist, already-friends and
// already-pending are idempotent no-ops. Otherwise a shadow record is created
// for an unknown invitee, mirrored pending records are appended to both sides,
// and the notification email is sent best-effort. The persisted invitation is
// the source of truth; a failed email never rolls it back.
func (s *Service) CreateInvitation(ctx context.Context, inviterEmail, inviteeEmail, inviteeFullName string) (*InvitationResult, error) {
	inviteeEmail, err := normalizeEmail(inviteeEmail)
	if err != nil {
		return nil, err
	}
	inviteeFullName = strings.TrimSpace(inviteeFullName)
	if inviteeFullName == "" {
		return nil, invalid("invitee name is required")
	}

	inviter, err := s.FindByEmail(ctx, inviterEmail)
	if err != nil {
		return nil, err
	}
	if inviter.Email == inviteeEmail {
		return nil, invalid("cannot invite yourself")
	}

	invitee, err := s.store.FindUserByEmail(ctx, inviteeEmail)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err)
	}
	if invitee != nil && inviter.HasFriend(invitee.ID) {
		return &InvitationResult{Outcome: OutcomeAlreadyFriends, Message: "You are already friends with this user"}, nil
	}
	if inviter.HasPendingInviteTo(inviteeEmail) {
		return &InvitationResult{Outcome: OutcomeAlreadyInvited, Message: "An invitation for this user is already pending"}, nil
	}

	now := time.Now().UTC()
	if invitee == nil {
		// Shadow record: gives the received-invite side somewhere to live
		// before the invitee has registered a wallet
		invitee = &domain.User{
			Email:           inviteeEmail,
			FullName:        inviteeFullName,
			Friends:         []primitive.ObjectID{},
			ReceivedInvites: []domain.Invite{},
			SentInvites:     []domain.Invite{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if ierr := s.store.InsertUser(ctx, invitee); ierr != nil {
			if !errors.Is(ierr, store.ErrDuplicateKey) {
				return nil, storeErr(ierr)
			}
			// The invitee registered concurrently; reload and continue
			invitee, err = s.store.FindUserByEmail(ctx, inviteeEmail)
			if err != nil {
				return nil, storeErr(err)
			}
		}
	}

	// Mirrored records: each side snapshots the counterparty's identity
	sent := domain.Invite{
		ID:        primitive.NewObjectID(),
		Email:     invitee.Email,
		FullName:  inviteeFullName,
		Status:    domain.InviteStatusPending,
		InvitedAt: now,
	}
	received := domain.Invite{
		ID:        primitive.NewObjectID(),
		Email:     inviter.Email,
		FullName:  inviter.FullName,
		Status:    domain.InviteStatusPending,
		InvitedAt: now,
	}
	inviter.SentInvites = append(inviter.SentInvites, sent)
	invitee.ReceivedInvites = append(invitee.ReceivedInvites, received)

	// Persist the sent side first: the already-invited guard reads it, so a
	// crash between the two writes makes a retry converge to AlreadyInvited
	// instead of duplicating the pair
	inviter.UpdatedAt = now
	if err := s.store.ReplaceUser(ctx, inviter); err != nil {
		return nil, storeErr(err)
	}
	invitee.UpdatedAt = now
	if err := s.store.ReplaceUser(ctx, invitee); err != nil {
		return nil, storeErr(err)
	}

	result := &InvitationResult{Outcome: OutcomeSent, Message: "Invitation sent", Invite: &sent}
	if err := s.mail.Send(mail.Invitation(invitee.Email, inviteeFullName, s.appURL)); err != nil {
		logrus.WithFields(logrus.Fields{
			"inviter": inviter.Email, // Inviting user
			"invitee": invitee.Email, // Invited email
			"error":   err.Error(),   // Error message
		}).Warn("Invitation email failed") // The invitation itself is already persisted
		result.EmailWarning = "Invitation saved but the notification email could not be sent"
	}
	return result, nil
}

// AcceptInvitation marks the invitation accepted on both sides and makes the
// parties friends. Only a pending invitation can be accepted; re-accepting a
// terminal one fails InvalidStateError, which guards against double-accept races.
func (s *Service) AcceptInvitation(ctx context.Context, inviteID, accepterEmail string) error {
	return s.settleInvitation(ctx, inviteID, accepterEmail, domain.InviteStatusAccepted)
}

// DeclineInvitation marks the invitation declined on both sides. No friendship
// is established, and the pair may be invited again later.
func (s *Service) DeclineInvitation(ctx context.Context, inviteID, declinerEmail string) error {
	return s.settleInvitation(ctx, inviteID, declinerEmail, domain.InviteStatusDeclined)
}

// settleInvitation is the shared accept/decline path. The two writes are not
// atomic: the inviter's mirror is saved first, then the recipient's record.
// Both mutations are pure status flips plus membership-checked friend adds, so
// a crash between them leaves a state any retry converges from.
func (s *Service) settleInvitation(ctx context.Context, inviteID, recipientEmail, status string) error {
	oid, err := primitive.ObjectIDFromHex(inviteID)
	if err != nil {
		return invalid("invalid invite id")
	}
	recipient, err := s.FindByEmail(ctx, recipientEmail)
	if err != nil {
		return err
	}
	inv := recipient.ReceivedInvite(oid)
	if inv == nil {
		return notFound("invite")
	}
	if inv.Status != domain.InviteStatusPending {
		return &InvalidStateError{Msg: "invite is not pending"}
	}
	inv.Status = status

	// The received record snapshots the inviter's identity
	inviter, err := s.store.FindUserByEmail(ctx, inv.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return storeErr(err)
	}
	if inviter != nil {
		if mirror := inviter.SentInviteTo(recipient.Email); mirror != nil {
			mirror.Status = status
		}
		if status == domain.InviteStatusAccepted {
			addMutualFriend(inviter, recipient)
		}
		inviter.UpdatedAt = time.Now().UTC()
		if err := s.store.ReplaceUser(ctx, inviter); err != nil {
			return storeErr(err)
		}
	}

	recipient.UpdatedAt = time.Now().UTC()
	if err := s.store.ReplaceUser(ctx, recipient); err != nil {
		return storeErr(err)
	}
	logrus.WithFields(logrus.Fields{
		"user":   recipient.Email, // Responding user
		"invite": inviteID,        // Invitation ID
		"status": status,          // Resulting status
	}).Info("Invitation settled")
	return nil
}

// ListInvitations returns both sides of the user's invitation ledger
func (s *Service) ListInvitations(ctx context.Context, email string) (*InvitationList, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &InvitationList{
		Received: append([]domain.Invite{}, user.ReceivedInvites...),
		Sent:     append([]domain.Invite{}, user.SentInvites...),
	}, nil
}
