package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/credentials"
	"github.com/alexmorgan-dev/portfolio-api/internal/infrastructure/memory"
	"github.com/alexmorgan-dev/portfolio-api/pkg/logger"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "hunter2-but-longer"
)

type stubMinter struct {
	configured bool
	err        error
	uid        string
	claims     map[string]any
}

func (m *stubMinter) Configured() bool { return m.configured }

func (m *stubMinter) MintCustomToken(_ context.Context, uid string, claims map[string]any) (string, error) {
	m.uid, m.claims = uid, claims
	if m.err != nil {
		return "", m.err
	}
	return "custom." + uid, nil
}

type brokenRevocations struct{}

func (brokenRevocations) Revoke(context.Context, string, time.Time) error { return errors.New("down") }
func (brokenRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("down")
}

type authFixture struct {
	svc    *AuthService
	clock  *fakeClock
	minter *stubMinter
	tokens *TokenIssuer
}

func newAuthFixture(t *testing.T, creds *credentials.Static) *authFixture {
	t.Helper()
	if creds == nil {
		creds = credentials.NewStatic(testEmail, testPassword, "")
	}

	clock := newFakeClock()
	limiter := newTestLimiter(clock)
	tokens, err := NewTokenIssuer("unit-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	minter := &stubMinter{}

	return &authFixture{
		svc:    NewAuthService(creds, limiter, tokens, memory.NewRevocationStore(), minter, logger.Nop()),
		clock:  clock,
		minter: minter,
		tokens: tokens,
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	user, err := f.svc.AuthenticateAdmin(ctx, testEmail, testPassword)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if user.Email != testEmail || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	cases := []struct{ email, password string }{
		{"bdmin@example.com", testPassword},
		{"admin@example.co", testPassword},
		{testEmail, "hunter2-but-longeR"},
		{testEmail, "hunter2-but-longer "},
		{testEmail, ""},
		{"", testPassword},
	}
	for _, tc := range cases {
		if _, err := f.svc.AuthenticateAdmin(ctx, tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%q/%q: expected invalid credentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthenticateAdmin_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	f := newAuthFixture(t, credentials.NewStatic(testEmail, "", string(hash)))

	if _, err := f.svc.AuthenticateAdmin(context.Background(), testEmail, testPassword); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, err := f.svc.AuthenticateAdmin(context.Background(), testEmail, string(hash)); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("the hash itself must not authenticate, got %v", err)
	}
}

func TestAuthenticateAdmin_Unconfigured(t *testing.T) {
	f := newAuthFixture(t, credentials.NewStatic("", "", ""))

	_, err := f.svc.AuthenticateAdmin(context.Background(), testEmail, testPassword)
	if !errors.Is(err, domain.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t, nil)

	res, err := f.svc.Login(context.Background(), "10.0.0.1", testEmail, testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.User.Email != testEmail {
		t.Fatalf("unexpected result: %+v", res)
	}

	user, err := f.svc.Verify(context.Background(), res.Token)
	if err != nil || user.Email != testEmail {
		t.Fatalf("verify issued token: %v %+v", err, user)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAuthFixture(t, nil)

	if _, err := f.svc.Login(context.Background(), "c", "", testPassword); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_CountsDownThenLocks(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	for want := DefaultMaxLoginAttempts - 1; want >= 0; want-- {
		_, err := f.svc.Login(ctx, "10.0.0.1", testEmail, "wrong")
		var ce *domain.CredentialsError
		if !errors.As(err, &ce) {
			t.Fatalf("expected credentials error, got %v", err)
		}
		if ce.AttemptsLeft != want {
			t.Fatalf("expected %d attempts left, got %d", want, ce.AttemptsLeft)
		}
	}

	_, err := f.svc.Login(ctx, "10.0.0.1", testEmail, testPassword)
	var rle *domain.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("correct credentials must be refused while locked, got %v", err)
	}
	if rle.LockoutMinutes() != 15 {
		t.Fatalf("expected 15 minute lockout, got %d", rle.LockoutMinutes())
	}

	f.clock.Advance(DefaultLockoutWindow)
	if _, err := f.svc.Login(ctx, "10.0.0.1", testEmail, testPassword); err != nil {
		t.Fatalf("expected login after window, got %v", err)
	}
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < DefaultMaxLoginAttempts-1; i++ {
		_, _ = f.svc.Login(ctx, "c", testEmail, "wrong")
	}
	if _, err := f.svc.Login(ctx, "c", testEmail, testPassword); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := f.svc.Login(ctx, "c", testEmail, "wrong")
	var ce *domain.CredentialsError
	if !errors.As(err, &ce) || ce.AttemptsLeft != DefaultMaxLoginAttempts-1 {
		t.Fatalf("expected counter reset, got %v", err)
	}
}

func TestLogin_ConcurrentGuessesStopAtLimit(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	f := newAuthFixture(t, credentials.NewStatic(testEmail, "", string(hash)))

	const workers = 40
	var mu sync.Mutex
	var wrong, locked int
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Login(context.Background(), "10.0.0.9", testEmail, "wrong")
			var ce *domain.CredentialsError
			var rle *domain.RateLimitError
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.As(err, &ce):
				wrong++
			case errors.As(err, &rle):
				locked++
			}
		}()
	}
	wg.Wait()

	if wrong != DefaultMaxLoginAttempts || locked != workers-DefaultMaxLoginAttempts {
		t.Fatalf("expected %d password checks and %d refusals, got %d and %d",
			DefaultMaxLoginAttempts, workers-DefaultMaxLoginAttempts, wrong, locked)
	}

	if _, err := f.svc.Login(context.Background(), "10.0.0.9", testEmail, testPassword); err == nil {
		t.Fatal("correct credentials must be refused after the burst")
	}
}

func TestVerify_Rejects(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	viewer, _ := f.tokens.Generate(&domain.User{Email: "viewer@example.com", Role: "viewer"})
	other, _ := NewTokenIssuer("another-secret", time.Hour)
	foreign, _ := other.Generate(&domain.User{Email: testEmail, Role: domain.RoleAdmin})

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "abc.def.ghi",
		"non-admin": viewer,
		"foreign":   foreign,
	} {
		if _, err := f.svc.Verify(ctx, tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: expected unauthorized, got %v", name, err)
		}
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "c", testEmail, testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.svc.Logout(ctx, res.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.svc.Verify(ctx, res.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}

	// A new login yields a fresh, valid token.
	res2, err := f.svc.Login(ctx, "c", testEmail, testPassword)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if _, err := f.svc.Verify(ctx, res2.Token); err != nil {
		t.Fatalf("fresh token: %v", err)
	}
}

func TestLogout_IgnoresInvalidTokens(t *testing.T) {
	f := newAuthFixture(t, nil)

	if err := f.svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty token: %v", err)
	}
	if err := f.svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("garbage token: %v", err)
	}
}

func TestVerify_FailsClosedOnRevocationError(t *testing.T) {
	f := newAuthFixture(t, nil)
	tok, _ := f.tokens.Generate(&domain.User{Email: testEmail, Role: domain.RoleAdmin})
	f.svc.revoked = brokenRevocations{}

	if _, err := f.svc.Verify(context.Background(), tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := f.svc.Logout(context.Background(), tok); err == nil {
		t.Fatal("expected logout to report the store error")
	}
}

func TestMintExternalToken(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()
	admin := &domain.User{Email: testEmail, Role: domain.RoleAdmin}

	if _, err := f.svc.MintExternalToken(ctx, admin); !errors.Is(err, domain.ErrDependencyUnavailable) {
		t.Fatalf("unconfigured minter: expected dependency error, got %v", err)
	}

	f.minter.configured = true
	tok, err := f.svc.MintExternalToken(ctx, admin)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if tok != "custom."+ExternalSubject(testEmail) {
		t.Fatalf("unexpected token %q", tok)
	}
	if f.minter.claims["admin"] != true || f.minter.claims["email"] != testEmail {
		t.Fatalf("unexpected claims: %v", f.minter.claims)
	}

	f.minter.err = errors.New("bad key")
	if _, err := f.svc.MintExternalToken(ctx, admin); !errors.Is(err, domain.ErrDependencyUnavailable) {
		t.Fatalf("mint failure: expected dependency error, got %v", err)
	}

	if _, err := f.svc.MintExternalToken(ctx, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("nil user: expected unauthorized, got %v", err)
	}
	if _, err := f.svc.MintExternalToken(ctx, &domain.User{Email: "v@example.com", Role: "viewer"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-admin: expected unauthorized, got %v", err)
	}
}

func TestExternalSubject(t *testing.T) {
	a := ExternalSubject(testEmail)
	if a != ExternalSubject(testEmail) {
		t.Fatal("subject must be stable")
	}
	if len(a) != len("admin-")+16 || a == ExternalSubject("other@example.com") {
		t.Fatalf("unexpected subject %q", a)
	}
}
