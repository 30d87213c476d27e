// Package realtimedb mints custom tokens for the Firebase realtime database,
// signed with a service account key.
package realtimedb

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// customTokenAudience is fixed by the identity toolkit.
	customTokenAudience = "https://identitytoolkit.googleapis.com/google.identity.identitytoolkit.v1.IdentityToolkit"
	customTokenTTL      = time.Hour
)

var reservedClaims = map[string]struct{}{
	"acr": {}, "amr": {}, "at_hash": {}, "aud": {}, "auth_time": {}, "azp": {}, "cnf": {},
	"c_hash": {}, "exp": {}, "firebase": {}, "iat": {}, "iss": {}, "jti": {}, "nbf": {},
	"nonce": {}, "sub": {},
}

// Config holds the service account fields needed to sign custom tokens.
type Config struct {
	ClientEmail string
	// PrivateKey is the PEM encoded RSA key. Literal "\n" sequences, as found
	// in environment variables, are accepted.
	PrivateKey string
}

type customClaims struct {
	UID    string         `json:"uid"`
	Claims map[string]any `json:"claims,omitempty"`
	jwt.RegisteredClaims
}

// Minter signs RS256 custom tokens. A Minter built from an empty Config is
// valid but unconfigured and refuses to mint.
type Minter struct {
	clientEmail string
	key         *rsa.PrivateKey
	now         func() time.Time
}

// NewMinter parses the service account key. An empty config yields an
// unconfigured Minter; a partial or malformed one is an error.
func NewMinter(cfg Config) (*Minter, error) {
	m := &Minter{now: time.Now}
	if cfg.ClientEmail == "" && cfg.PrivateKey == "" {
		return m, nil
	}
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, errors.New("realtimedb: client email and private key must both be set")
	}

	pem := strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("realtimedb: parse private key: %w", err)
	}
	m.clientEmail = cfg.ClientEmail
	m.key = key
	return m, nil
}

func (m *Minter) Configured() bool {
	return m != nil && m.key != nil
}

// MintCustomToken returns a signed custom token for uid carrying claims.
func (m *Minter) MintCustomToken(_ context.Context, uid string, claims map[string]any) (string, error) {
	if !m.Configured() {
		return "", errors.New("realtimedb: minter not configured")
	}
	if uid == "" || len(uid) > 128 {
		return "", errors.New("realtimedb: uid must be 1-128 characters")
	}
	for k := range claims {
		if _, ok := reservedClaims[k]; ok {
			return "", fmt.Errorf("realtimedb: claim %q is reserved", k)
		}
	}

	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, customClaims{
		UID:    uid,
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.clientEmail,
			Subject:   m.clientEmail,
			Audience:  jwt.ClaimStrings{customTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(customTokenTTL)),
		},
	})

	signed, err := tok.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("realtimedb: sign custom token: %w", err)
	}
	return signed, nil
}
