package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

type stubVerifier struct {
	tokens map[string]*domain.User
	err    error
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func newVerifier() *stubVerifier {
	return &stubVerifier{tokens: map[string]*domain.User{
		"good": {Email: "admin@example.com", Role: domain.RoleAdmin},
	}}
}

func runAuth(t *testing.T, v *stubVerifier, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(v)(func(c echo.Context) error {
		called = true
		if u := UserFromContext(c); u == nil || u.Email != "admin@example.com" {
			t.Fatalf("user not injected: %+v", u)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})

	rec, called := runAuth(t, newVerifier(), req)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	rec, called := runAuth(t, newVerifier(), req)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via bearer header, got %d", rec.Code)
	}
}

func TestTokensFromRequest_CookieFirst(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	req.Header.Set("Authorization", "Bearer other")

	got := TokensFromRequest(req)
	if len(got) != 2 || got[0] != "good" || got[1] != "other" {
		t.Fatalf("expected cookie then bearer, got %q", got)
	}

	req.Header.Set("Authorization", "Bearer good")
	if got := TokensFromRequest(req); len(got) != 1 {
		t.Fatalf("expected duplicate token to be dropped, got %q", got)
	}
}

func TestAuthMiddleware_StaleCookieFallsBackToBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	req.Header.Set("Authorization", "Bearer good")

	rec, called := runAuth(t, newVerifier(), req)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected valid bearer to be accepted, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidCookieWithBadBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	req.Header.Set("Authorization", "Bearer bad")

	rec, called := runAuth(t, newVerifier(), req)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected cookie session to be accepted, got %d", rec.Code)
	}
}

func TestAuthMiddleware_AllCandidatesInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	req.Header.Set("Authorization", "Bearer forged")

	rec, called := runAuth(t, newVerifier(), req)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, called := runAuth(t, newVerifier(), req)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token good")

	rec, called := runAuth(t, newVerifier(), req)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec, called := runAuth(t, newVerifier(), req)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_VerifierFailurePropagates(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	c := e.NewContext(req, httptest.NewRecorder())

	boom := errors.New("store down")
	err := Auth(&stubVerifier{err: boom})(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected verifier error, got %v", err)
	}
}
