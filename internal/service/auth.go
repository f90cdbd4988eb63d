// Package service provides the business logic between HTTP handlers
// and repositories: authentication, user management, subdivisions, and
// projects.
package service

import (
	"context"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/password"
	"github.com/okarpova/staffhub/internal/token"
)

// AuthUserSource defines the user lookups the authentication flows
// depend on.
type AuthUserSource interface {
	// Get returns a user's profile by username.
	Get(ctx context.Context, username string) (*models.User, error)
	// GetCredential returns the stored password hash for username.
	GetCredential(ctx context.Context, username string) ([]byte, error)
	// GetStatus returns a user's account flags by username.
	GetStatus(ctx context.Context, username string) (*models.UserStatus, error)
}

// TokenPair is the access/refresh pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Auth implements login and token refresh.
type Auth struct {
	users  AuthUserSource
	codec  *token.Codec
	issuer *token.Issuer
}

// NewAuth constructs an Auth service over the given user source and
// token machinery.
func NewAuth(users AuthUserSource, codec *token.Codec, issuer *token.Issuer) *Auth {
	return &Auth{users: users, codec: codec, issuer: issuer}
}

// Login verifies a credential pair and issues an access/refresh token
// pair. Unknown users and disabled accounts are reported before the
// password is checked.
func (a *Auth) Login(ctx context.Context, username, plaintext string) (*models.User, *TokenPair, error) {
	user, err := a.users.Get(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperr.New(apperr.KindUserDisabled, "User has been disabled")
	}

	credential, err := a.users.GetCredential(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	ok, err := password.Verify(plaintext, credential)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	if !ok {
		return nil, nil, apperr.New(apperr.KindInvalidPassword, "Password is not valid")
	}

	access, err := a.issuer.AccessToken(user.Username)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	refresh, err := a.issuer.RefreshToken(user.Username)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return user, &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a refresh token for a new access token. The token
// is decoded and type-checked before any database work, so a forged or
// expired token never triggers a lookup.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := a.codec.Decode(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != token.TypeRefresh {
		return "", apperr.New(apperr.KindWrongTokenType, "Invalid token type")
	}

	status, err := a.users.GetStatus(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if !status.IsActive {
		return "", apperr.New(apperr.KindUserDisabled, "User has been disabled")
	}

	access, err := a.issuer.AccessToken(status.Username)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return access, nil
}
