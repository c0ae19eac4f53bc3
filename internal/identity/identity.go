package identity

import (
	"context"

	"github.com/draftmerge/draftmerge/internal/model"
)

// Provider is the capability surface of the external identity provider:
// building the authorization redirect, exchanging an authorization code,
// looking up the user's profile, and dispatching mail as the user.
// Handlers and the send orchestrator depend on this interface so tests
// can substitute a fake implementation.
type Provider interface {
	// AuthCodeURL returns the authorization endpoint URL carrying the
	// one-time state token.
	AuthCodeURL(state string) string

	// ExchangeCode trades the callback's authorization code for a token
	// bundle.
	ExchangeCode(ctx context.Context, code string) (*model.Credentials, error)

	// FetchProfile returns the display name and email address of the
	// account behind the credentials.
	FetchProfile(ctx context.Context, creds *model.Credentials) (*model.UserInfo, error)

	// SendMessage submits one raw RFC-822 message through the user's own
	// account.
	SendMessage(ctx context.Context, creds *model.Credentials, raw []byte) error
}
