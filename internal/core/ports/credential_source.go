package ports

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// CredentialSource yields the configured admin identity.
type CredentialSource interface {
	AdminCredential(ctx context.Context) (domain.AdminCredential, error)
}

// ExternalTokenMinter issues custom tokens for the external realtime database.
type ExternalTokenMinter interface {
	// Configured reports whether the identity provider can mint tokens.
	Configured() bool
	MintCustomToken(ctx context.Context, uid string, claims map[string]any) (string, error)
}
