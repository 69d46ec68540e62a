package core

import (
	"context"
	"testing"

	"privypay/internal/domain"
	"privypay/internal/mail"
	"privypay/internal/store"

	"github.com/stretchr/testify/require"
)

// Valid, checksum-neutral wallet addresses for tests
const (
	walletAlice   = "0x1111111111111111111111111111111111111111"
	walletBob     = "0x2222222222222222222222222222222222222222"
	walletCarol   = "0x3333333333333333333333333333333333333333"
	walletUnknown = "0x9999999999999999999999999999999999999999"
)

// fakeSender records outbound mail and can be told to fail
type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(m mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func newTestService() (*Service, *store.Memory, *fakeSender) {
	st := store.NewMemory()
	sender := &fakeSender{}
	return NewService(st, sender, "https://pay.example.com"), st, sender
}

func mustRegister(t *testing.T, svc *Service, email, name, wallet string) *domain.User {
	t.Helper()
	user, err := svc.RegisterOrUpdate(context.Background(), email, name, wallet)
	require.NoError(t, err)
	return user
}

// requireSymmetric asserts the friends-set invariant for a pair of emails
func requireSymmetric(t *testing.T, svc *Service, emailA, emailB string) {
	t.Helper()
	ctx := context.Background()
	a, err := svc.FindByEmail(ctx, emailA)
	require.NoError(t, err)
	b, err := svc.FindByEmail(ctx, emailB)
	require.NoError(t, err)
	require.Equal(t, a.HasFriend(b.ID), b.HasFriend(a.ID), "friendship between %s and %s must be symmetric", emailA, emailB)
}
