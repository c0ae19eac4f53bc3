package identity

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/draftmerge/draftmerge/internal/config"
	"github.com/draftmerge/draftmerge/internal/model"
)

// Scopes requested at login: identity (profile, email) plus permission
// to send mail as the user.
var Scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	gmail.GmailSendScope,
}

// Google implements Provider against Google's OAuth2 and Gmail APIs.
type Google struct {
	oauth *oauth2.Config
}

// NewGoogle creates a Google identity provider binding
func NewGoogle(cfg config.GoogleConfig) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       Scopes,
		},
	}
}

// AuthCodeURL returns the authorization URL. Offline access plus forced
// consent so a refresh token is always granted.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// ExchangeCode trades an authorization code for a token bundle
func (g *Google) ExchangeCode(ctx context.Context, code string) (*model.Credentials, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("identity: code exchange failed: %w", err)
	}
	return &model.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     g.oauth.Endpoint.TokenURL,
		ClientID:     g.oauth.ClientID,
		ClientSecret: g.oauth.ClientSecret,
		Scopes:       g.oauth.Scopes,
	}, nil
}

// FetchProfile looks up the user's name and email address
func (g *Google) FetchProfile(ctx context.Context, creds *model.Credentials) (*model.UserInfo, error) {
	svc, err := goauth2.NewService(ctx, option.WithTokenSource(g.tokenSource(ctx, creds)))
	if err != nil {
		return nil, fmt.Errorf("identity: failed to create oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("identity: userinfo lookup failed: %w", err)
	}

	name := info.Name
	if name == "" {
		name = "User"
	}
	return &model.UserInfo{Name: name, Email: info.Email}, nil
}

// SendMessage submits one raw RFC-822 message via the Gmail API, sent
// as the authenticated user.
func (g *Google) SendMessage(ctx context.Context, creds *model.Credentials, raw []byte) error {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(g.tokenSource(ctx, creds)))
	if err != nil {
		return fmt.Errorf("identity: failed to create gmail service: %w", err)
	}

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}
	if _, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("identity: gmail send failed: %w", err)
	}
	return nil
}

// tokenSource rebuilds an auto-refreshing token source from the stored
// session bundle.
func (g *Google) tokenSource(ctx context.Context, creds *model.Credentials) oauth2.TokenSource {
	tok := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
	return g.oauth.TokenSource(ctx, tok)
}
