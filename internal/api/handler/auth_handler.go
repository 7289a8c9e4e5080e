package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/notekeeper/notes-api/internal/api/metrics"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// MintToken issues a token for an identity established out of band, the
// flow the web client uses after signing in with its identity provider.
//
// @Summary      Mint a bearer token for an email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      mintTokenRequest  true  "Identity"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) MintToken(c echo.Context) error {
	var req mintTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.MintToken(req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// ChangePassword re-hashes and stores a new password for the caller. The
// account is always the one in the verified token; no new token is issued.
//
// @Summary      Change the caller's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), email, req.CurrentPassword, req.NewPassword); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("change_password", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("change_password", "ok").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "password changed successfully"})
}
