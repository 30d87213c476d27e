package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/api/middleware"
)

// CookieConfig controls the admin session cookie attributes.
type CookieConfig struct {
	// Secure marks the cookie HTTPS-only; off for local development.
	Secure bool
	MaxAge time.Duration
}

func (cc CookieConfig) set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clear reissues the cookie empty with Max-Age=0.
func (cc CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
