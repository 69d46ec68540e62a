// Package core implements the invitation/friendship consistency core: the
// user directory, the invitation ledger with its mirrored records, friendship
// sync, and the transaction history. Every operation takes the acting identity
// as an explicit parameter; nothing is read from ambient state.
package core

import (
	"privypay/internal/mail"  // Invitation email sender
	"privypay/internal/store" // Document store client
)

// Identity is the authenticated caller as supplied by the wallet provider.
// The core trusts it; it never authenticates independently.
type Identity struct {
	Email         string // Provider-verified email
	WalletAddress string // Custodial wallet address
}

// Service wires the core operations to their collaborators
type Service struct {
	store  store.Store // Document store
	mail   mail.Sender // Outbound invitation email, best-effort
	appURL string      // Public app URL embedded in invitation emails
}

// NewService builds a Service over the given collaborators
func NewService(st store.Store, sender mail.Sender, appURL string) *Service {
	return &Service{store: st, mail: sender, appURL: appURL}
}
