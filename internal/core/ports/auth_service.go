package ports

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// LoginResult is returned by a successful admin login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService is the admin authentication gate.
type AuthService interface {
	// Login checks the rate limit for clientID, validates the credentials and
	// issues a session token. Failures are *domain.CredentialsError or
	// *domain.RateLimitError.
	Login(ctx context.Context, clientID, email, password string) (*LoginResult, error)
	// Verify decodes a session token and returns the identity it carries.
	Verify(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes token until it would have expired.
	Logout(ctx context.Context, token string) error
	// MintExternalToken exchanges a verified admin for a realtime-db token.
	MintExternalToken(ctx context.Context, user *domain.User) (string, error)
}

// TokenVerifier is the slice of AuthService the auth middleware depends on.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}
