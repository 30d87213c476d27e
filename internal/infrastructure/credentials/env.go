// Package credentials provides the admin CredentialSource backed by
// process configuration.
package credentials

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// Static serves a fixed admin credential loaded at startup.
type Static struct {
	cred domain.AdminCredential
}

// NewStatic builds a source from configuration values. When both a password
// and a bcrypt hash are given the hash wins.
func NewStatic(email, password, passwordHash string) *Static {
	cred := domain.AdminCredential{Email: email}
	if passwordHash != "" {
		cred.PasswordHash = passwordHash
	} else {
		cred.Password = password
	}
	return &Static{cred: cred}
}

func (s *Static) AdminCredential(context.Context) (domain.AdminCredential, error) {
	return s.cred, nil
}
