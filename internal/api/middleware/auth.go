package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_token"

const userContextKey = "admin_user"

// TokensFromRequest returns the session token candidates in the order they
// are tried: the admin_token cookie, then an "Authorization: Bearer" header.
// Duplicates are dropped.
func TokensFromRequest(r *http.Request) []string {
	var out []string
	if ck, err := r.Cookie(SessionCookieName); err == nil && ck.Value != "" {
		out = append(out, ck.Value)
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if bearer := strings.TrimSpace(parts[1]); bearer != "" && (len(out) == 0 || out[0] != bearer) {
			out = append(out, bearer)
		}
	}
	return out
}

// Auth verifies the session token and injects the admin identity into context.
// Each candidate from TokensFromRequest is tried in turn and the first valid
// one wins, so a stale cookie does not hide a valid bearer header. Verifier
// errors other than domain.ErrUnauthorized are returned as is.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokens := TokensFromRequest(c.Request())
			if len(tokens) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			for _, token := range tokens {
				user, err := verifier.Verify(c.Request().Context(), token)
				if err == nil {
					c.Set(userContextKey, user)
					return next(c)
				}
				if !errors.Is(err, domain.ErrUnauthorized) {
					return err
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
		}
	}
}

// UserFromContext returns the identity injected by Auth, or nil.
func UserFromContext(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}

// SetUser injects user into the request context the way Auth does.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}
