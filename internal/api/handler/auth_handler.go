package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/book-tracker/internal/api/metrics"
	"github.com/shelfmark/book-tracker/internal/api/middleware"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

// AuthHandler handles registration, login, logout, and identity lookup.
type AuthHandler struct {
	service ports.AuthService
	kind    ports.CredentialKind
}

func NewAuthHandler(service ports.AuthService, kind ports.CredentialKind) *AuthHandler {
	return &AuthHandler{service: service, kind: kind}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.service.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// Login authenticates a user and hands back a credential: a bearer token in
// the body, or a session cookie, depending on the active strategy.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cred, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if cred.Kind == ports.KindCookie {
		middleware.SetSessionCookie(c, cred)
		return c.JSON(http.StatusOK, loginResponse{Message: "Logged in"})
	}
	return c.JSON(http.StatusOK, loginResponse{Token: cred.Value})
}

// Logout revokes the caller's session and clears the cookie. Idempotent: a
// second logout with the same (now dead) session id still returns 200.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// A missing credential is fine; the cookie is cleared either way.
	presented, _ := middleware.ExtractCredential(c, h.kind)

	if err := h.service.Logout(c.Request().Context(), presented); err != nil {
		return err
	}

	if h.kind == ports.KindCookie {
		middleware.ClearSessionCookie(c)
		metrics.SessionsRevokedTotal.Inc()
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

// Me returns the authenticated caller, or "user": null for anonymous
// requests. Unlike protected routes this never answers 401.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	presented, _ := middleware.ExtractCredential(c, h.kind)

	user, err := h.service.CurrentUser(c.Request().Context(), presented)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{User: user})
}
