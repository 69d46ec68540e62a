package core

import (
	"context"
	"testing"

	"privypay/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestRegisterOrUpdateCreatesUser(t *testing.T) {
	svc, _, _ := newTestService()
	user := mustRegister(t, svc, "Alice@X.com", "Alice", walletAlice)
	require.Equal(t, "alice@x.com", user.Email, "emails are stored lowercased")
	require.Equal(t, "Alice", user.FullName)
	require.Equal(t, walletAlice, user.WalletAddress)
	require.False(t, user.ID.IsZero())
	require.NotNil(t, user.Friends)
}

func TestRegisterOrUpdateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	var ve *ValidationError

	_, err := svc.RegisterOrUpdate(ctx, "", "Alice", walletAlice)
	require.ErrorAs(t, err, &ve)
	_, err = svc.RegisterOrUpdate(ctx, "not-an-email", "Alice", walletAlice)
	require.ErrorAs(t, err, &ve)
	_, err = svc.RegisterOrUpdate(ctx, "alice@x.com", "", walletAlice)
	require.ErrorAs(t, err, &ve)
	_, err = svc.RegisterOrUpdate(ctx, "alice@x.com", "Alice", "0xNOTHEX")
	require.ErrorAs(t, err, &ve)
}

func TestRegisterOrUpdateRejectsNameAddrEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	var ve *ValidationError

	// A name-addr form would be stored literally and never match the bare
	// address the user registers with later
	_, err := svc.RegisterOrUpdate(ctx, "Bob <bob@x.com>", "Bob", walletBob)
	require.ErrorAs(t, err, &ve)

	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	_, err = svc.CreateInvitation(ctx, "alice@x.com", "Bob <bob@x.com>", "Bob")
	require.ErrorAs(t, err, &ve)
}

func TestRegisterOrUpdateRejectsWalletOwnedByAnotherUser(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)
	var cf *ConflictError

	// Update path: bob cannot claim alice's wallet
	_, err := svc.RegisterOrUpdate(ctx, "bob@x.com", "Bob", walletAlice)
	require.ErrorAs(t, err, &cf)

	// Bob's record is untouched and wallet resolution stays unambiguous
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, walletBob, bob.WalletAddress)
	owner, err := svc.FindByWalletAddress(ctx, walletAlice)
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", owner.Email)

	// Create path: a brand-new registration cannot claim it either
	_, err = svc.RegisterOrUpdate(ctx, "eve@x.com", "Eve", walletAlice)
	require.ErrorAs(t, err, &cf)
}

func TestRegisterOrUpdateKeepsWalletOnEmptyUpdate(t *testing.T) {
	svc, _, _ := newTestService()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)

	// An update without a wallet must not erase the stored one
	updated := mustRegister(t, svc, "alice@x.com", "Alice Cooper", "")
	require.Equal(t, "Alice Cooper", updated.FullName)
	require.Equal(t, walletAlice, updated.WalletAddress)
}

func TestRegistrationAutoResolvesPendingInvites(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)

	// Alice invites Bob before he has registered
	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	shadow, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Empty(t, shadow.WalletAddress)

	// Bob registers directly; the pending invite resolves without an accept screen
	bob := mustRegister(t, svc, "bob@x.com", "Bob", walletBob)
	require.Equal(t, walletBob, bob.WalletAddress)

	alice, err := svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.True(t, alice.HasFriend(bob.ID))
	require.True(t, bob.HasFriend(alice.ID))
	require.Equal(t, domain.InviteStatusAccepted, alice.SentInvites[0].Status)
	require.Equal(t, domain.InviteStatusAccepted, bob.ReceivedInvites[0].Status)
	requireSymmetric(t, svc, "alice@x.com", "bob@x.com")

	// Re-registering must not duplicate the friendship
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)
	alice, err = svc.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, alice.Friends, 1)
}

func TestSearchExcludesSelfAndFlagsFriends(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice Example", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob Example", walletBob)
	carol := mustRegister(t, svc, "carol@x.com", "Carol Example", walletCarol)

	// Befriend alice and bob
	_, err := svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob Example")
	require.NoError(t, err)
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.AcceptInvitation(ctx, bob.ReceivedInvites[0].ID.Hex(), "bob@x.com"))

	results, err := svc.Search(ctx, "example", "alice@x.com")
	require.NoError(t, err)
	require.Len(t, results, 2, "the searching user is never in its own results")
	for _, r := range results {
		require.NotEqual(t, "alice@x.com", r.Email)
		switch r.Email {
		case "bob@x.com":
			require.True(t, r.IsFriend)
		case "carol@x.com":
			require.False(t, r.IsFriend)
			require.Equal(t, carol.ID, r.ID)
		}
	}
}

func TestListFriends(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	mustRegister(t, svc, "bob@x.com", "Bob", walletBob)

	friends, err := svc.ListFriends(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Empty(t, friends)

	_, err = svc.CreateInvitation(ctx, "alice@x.com", "bob@x.com", "Bob")
	require.NoError(t, err)
	bob, err := svc.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, svc.AcceptInvitation(ctx, bob.ReceivedInvites[0].ID.Hex(), "bob@x.com"))

	friends, err = svc.ListFriends(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, "bob@x.com", friends[0].Email)
	require.Equal(t, walletBob, friends[0].WalletAddress)

	_, err = svc.ListFriends(ctx, "ghost@x.com")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCheckUser(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Absence is a valid answer, not an error
	check, err := svc.CheckUser(ctx, "ghost@x.com")
	require.NoError(t, err)
	require.Nil(t, check)

	mustRegister(t, svc, "alice@x.com", "Alice", walletAlice)
	check, err = svc.CheckUser(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, check)
	require.True(t, check.HasFullName)
	require.Equal(t, walletAlice, check.WalletAddress)
}
