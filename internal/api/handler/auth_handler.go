package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alexmorgan-dev/portfolio-api/internal/api/middleware"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

type sessionResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type externalTokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Login authenticates the admin and starts a cookie session.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any  "invalid credentials, includes attemptsLeft"
// @Failure      429   {object}  map[string]any  "locked out, includes lockoutTime in minutes"
// @Failure      500   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), clientID(c), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookie.set(c, res.Token)
	return c.JSON(http.StatusOK, loginResponse{Success: true, User: res.User, Token: res.Token})
}

// Logout revokes every session token the request carries and clears the
// cookie. It always succeeds from the caller's point of view.
//
// @Summary      Admin logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	for _, token := range middleware.TokensFromRequest(c.Request()) {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Str("client_id", clientID(c)).Msg("logout could not revoke token")
		}
	}

	h.cookie.clear(c)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Verify reports the identity of the current session.
//
// @Summary      Verify admin session
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]any
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Success: true, User: user})
}

// ExternalDBToken mints a realtime-db custom token for the current admin.
//
// @Summary      Mint realtime database token
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  externalTokenResponse
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /auth/externaldb-token [post]
func (h *AuthHandler) ExternalDBToken(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	token, err := h.authService.MintExternalToken(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, externalTokenResponse{Success: true, Token: token})
}
