package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	AttemptsLeft *int   `json:"attemptsLeft,omitempty"`
	LockoutTime  *int   `json:"lockoutTime,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logError(log, c, err, he.Code)
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var rle *domain.RateLimitError
	if errors.As(err, &rle) {
		minutes := rle.LockoutMinutes()
		c.Response().Header().Set("Retry-After", strconv.Itoa(minutes*60))
		return http.StatusTooManyRequests, errorResponse{
			Error:       fmt.Sprintf("too many login attempts, try again in %d minutes", minutes),
			LockoutTime: &minutes,
		}
	}

	var ce *domain.CredentialsError
	if errors.As(err, &ce) {
		left := ce.AttemptsLeft
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials", AttemptsLeft: &left}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Reason}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: "invalid request"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	}

	// Dependency outages and unexpected errors: log the real cause, return a
	// generic message.
	logError(log, c, err, http.StatusInternalServerError)
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func logError(log zerolog.Logger, c echo.Context, err error, code int) {
	log.Error().
		Err(err).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("client_id", c.RealIP()).
		Bool("dependency_unavailable", errors.Is(err, domain.ErrDependencyUnavailable)).
		Msg("unhandled error")
}
