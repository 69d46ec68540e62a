package core

import (
	"context"
	"errors"
	"testing"

	"privypay/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCreateInvitationMirrorsBothSides(t *testing.T) {
	svc, _, sender := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)

	result, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, result.Outcome)
	require.NotNil(t, result.Invite)
	require.Empty(t, result.EmailWarning)

	// Sent side carries the invitee's snapshot
	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, alice.SentInvites, 1)
	require.Equal(t, "bob@x.com", alice.SentInvites[0].Email)
	require.Equal(t, domain.InviteStatusPending, alice.SentInvites[0].Status)

	// A shadow record was created for the invitee: no wallet, received side
	// carries the inviter's snapshot
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Empty(t, bob.WalletAddress)
	require.Len(t, bob.ReceivedInvites, 1)
	require.Equal(t, "alice@x.com", bob.ReceivedInvites[0].Email)
	require.Equal(t, "Alice", bob.ReceivedInvites[0].FullName)
	require.Equal(t, domain.InviteStatusPending, bob.ReceivedInvites[0].Status)

	// Notification email went to the invitee
	require.Len(t, sender.sent, 1)
	require.Equal(t, "bob@x.com", sender.sent[0].To)
}

func TestCreateInvitationIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)

	first, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, first.Outcome)

	second, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyInvited, second.Outcome)

	// Exactly one pending record on each side
	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, alice.SentInvites, 1)
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Len(t, bob.ReceivedInvites, 1)
}

func TestCreateInvitationAlreadyFriends(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)

	result, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, result.Outcome)

	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.AcceptInvitation(ctx, bob.ReceivedInvites[0].ID.Hex(), "bob@x.com"))

	again, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyFriends, again.Outcome)
}

func TestCreateInvitationGuards(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Unknown inviter
	_, err := svc.CreateInvitation(ctx, "ghost@x.com", "bob@x.com", "Bob")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	// Self-invitation
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	_, err = svc.CreateInvitation(ctx, "alice@x.com", "alice@x.com", "Alice")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestEmailFailureDoesNotRollBackInvitation(t *testing.T) {
	svc, _, sender := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	sender.err = errors.New("smtp: connection refused")

	result, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, result.Outcome)
	require.NotEmpty(t, result.EmailWarning)

	// The invitation record is the source of truth and survived the failure
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Len(t, bob.ReceivedInvites, 1)
	require.Equal(t, domain.InviteStatusPending, bob.ReceivedInvites[0].Status)
}

func TestAcceptInvitationConvergesBothMirrors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)

	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)

	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.AcceptInvitation(ctx, bob.ReceivedInvites[0].ID.Hex(), "bob@x.com"))

	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	bob, err = svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusAccepted, alice.SentInvites[0].Status)
	require.Equal(t, domain.InviteStatusAccepted, bob.ReceivedInvites[0].Status)
	require.True(t, alice.HasFriend(bob.ID))
	require.True(t, bob.HasFriend(alice.ID))
	requireSymmetric(t, svc, "alice@x.com", "bob@x.com")
}

func TestAcceptIsOneWay(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)

	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	inviteID := bob.ReceivedInvites[0].ID.Hex()
	require.NoError(t, svc.AcceptInvitation(ctx, inviteID, "bob@x.com"))

	// Double-accept fails and does not touch the friend lists
	err = svc.AcceptInvitation(ctx, inviteID, "bob@x.com")
	var is *InvalidStateError
	require.ErrorAs(t, err, &is)

	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	bob, err = svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Len(t, alice.Friends, 1)
	require.Len(t, bob.Friends, 1)
}

func TestDeclineThenReinvite(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)

	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.DeclineInvitation(ctx, bob.ReceivedInvites[0].ID.Hex(), "bob@x.com"))

	// Declined on both sides, no friendship
	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	bob, err = svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusDeclined, alice.SentInvites[0].Status)
	require.Equal(t, domain.InviteStatusDeclined, bob.ReceivedInvites[0].Status)
	require.Empty(t, alice.Friends)
	require.Empty(t, bob.Friends)

	// A decline is not terminal for the pair: a fresh pending record may follow
	again, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.Equal(t, OutcomeSent, again.Outcome)

	alice, err = svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, alice.SentInvites, 2)
	require.Equal(t, domain.InviteStatusPending, alice.SentInvites[1].Status)
}

func TestListInvitations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "carol@x.com", "Carol", walletCarol)

	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	_, err = svc.CreateInvitation(ctx, "carol@x.com", "alice@x.com", "Alice")
	require.NoError(t, err)

	invites, err := svc.ListInvitations(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, invites.Sent, 1)
	require.Len(t, invites.Received, 1)
	require.Equal(t, "bob@x.com", invites.Sent[0].Email)
	require.Equal(t, "carol@x.com", invites.Received[0].Email)

	_, err = svc.ListInvitations(ctx, "ghost@x.com")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
