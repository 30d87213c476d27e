package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
	"github.com/alexmorgan-dev/portfolio-api/internal/metrics"
)

// AuthService implements admin login, session verification, logout and the
// realtime-db token bridge.
type AuthService struct {
	credentials ports.CredentialSource
	limiter     *RateLimiter
	tokens      *TokenIssuer
	revoked     ports.RevocationStore
	minter      ports.ExternalTokenMinter
	log         zerolog.Logger
}

func NewAuthService(
	credentials ports.CredentialSource,
	limiter *RateLimiter,
	tokens *TokenIssuer,
	revoked ports.RevocationStore,
	minter ports.ExternalTokenMinter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		limiter:     limiter,
		tokens:      tokens,
		revoked:     revoked,
		minter:      minter,
		log:         log,
	}
}

// AuthenticateAdmin compares email and password against the configured admin
// identity. Both fields are always compared so the failure does not reveal
// which one was wrong.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	cred, err := s.credentials.AdminCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin credential: %w", errors.Join(domain.ErrDependencyUnavailable, err))
	}
	if !cred.Configured() {
		return nil, fmt.Errorf("admin credential not configured: %w", domain.ErrDependencyUnavailable)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(cred.Email)) == 1
	passwordOK := checkPassword(cred, password)
	if !emailOK || !passwordOK {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.User{Email: cred.Email, Role: domain.RoleAdmin}, nil
}

func checkPassword(cred domain.AdminCredential, password string) bool {
	if cred.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(cred.Password)) == 1
}

// Login runs the full gate: attempt reservation, credential check, attempt
// bookkeeping and token issue. The attempt is counted before the password
// compare and cleared on success. A locked out client is refused even when
// the credentials are correct.
func (s *AuthService) Login(ctx context.Context, clientID, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	status, err := s.limiter.Acquire(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !status.Allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		s.log.Warn().Str("client_id", clientKey(clientID)).Int("lockout_minutes", status.LockoutMinutes).Msg("login refused, client locked out")
		return nil, &domain.RateLimitError{Lockout: status.RetryAfter}
	}

	user, err := s.AuthenticateAdmin(ctx, email, password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.log.Info().Str("client_id", clientKey(clientID)).Int("attempts_left", status.AttemptsLeft).Msg("admin login failed")
		return nil, &domain.CredentialsError{AttemptsLeft: status.AttemptsLeft}
	}

	if err := s.limiter.Record(ctx, clientID, true); err != nil {
		s.log.Warn().Err(err).Str("client_id", clientKey(clientID)).Msg("failed to reset login attempts")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("client_id", clientKey(clientID)).Str("email", user.Email).Msg("admin logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// Verify returns the admin identity carried by token. Any signature, expiry,
// role or revocation problem yields domain.ErrUnauthorized.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("session token rejected")
		return nil, domain.ErrUnauthorized
	}
	if claims.Role != domain.RoleAdmin || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.log.Error().Err(err).Str("jti", claims.ID).Msg("revocation lookup failed")
		return nil, domain.ErrUnauthorized
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	return &domain.User{Email: claims.Email, Role: claims.Role}, nil
}

// Logout revokes token until its natural expiry. Missing or already invalid
// tokens need no revocation.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	s.log.Info().Str("email", claims.Email).Msg("admin logged out")
	return nil
}

// MintExternalToken exchanges an already verified admin identity for a
// realtime-db custom token. It fails closed when the identity provider is
// not configured.
func (s *AuthService) MintExternalToken(ctx context.Context, user *domain.User) (string, error) {
	if user == nil || user.Role != domain.RoleAdmin {
		return "", domain.ErrUnauthorized
	}
	if s.minter == nil || !s.minter.Configured() {
		metrics.ExternalTokensMintedTotal.WithLabelValues("unconfigured").Inc()
		s.log.Error().Msg("realtime-db identity provider not configured")
		return "", fmt.Errorf("mint external token: %w", domain.ErrDependencyUnavailable)
	}

	token, err := s.minter.MintCustomToken(ctx, ExternalSubject(user.Email), map[string]any{
		"admin": true,
		"email": user.Email,
	})
	if err != nil {
		metrics.ExternalTokensMintedTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", user.Email).Msg("realtime-db token mint failed")
		return "", fmt.Errorf("mint external token: %w", domain.ErrDependencyUnavailable)
	}

	metrics.ExternalTokensMintedTotal.WithLabelValues("success").Inc()
	return token, nil
}

// ExternalSubject derives the stable realtime-db uid for an admin email.
func ExternalSubject(email string) string {
	sum := sha256.Sum256([]byte(email))
	return "admin-" + hex.EncodeToString(sum[:])[:16]
}
