package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthUser is a provider-agnostic profile. Each provider maps its own
// payload onto this shape so the login flow never branches on provider.
type OAuthUser struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	AvatarURL     string
}

// OAuthProvider covers the whole authorization-code dance: build the
// consent URL, swap the callback code for a token, then fetch the profile.
type OAuthProvider interface {
	Name() string
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}
