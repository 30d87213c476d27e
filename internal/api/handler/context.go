package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alexmorgan-dev/portfolio-api/internal/api/middleware"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// currentUser extracts the admin identity injected by the Auth middleware.
// Its absence means the route was wired without Auth; reject with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// clientID identifies the caller for rate limiting. The router configures
// echo's IP extractor; an empty result is bucketed by the service.
func clientID(c echo.Context) string {
	return strings.TrimSpace(c.RealIP())
}
