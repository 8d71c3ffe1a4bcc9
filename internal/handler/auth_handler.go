package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"alemsite/internal/auth"
	"alemsite/internal/config"
	apperrors "alemsite/internal/errors"
	"alemsite/internal/middleware"
	"alemsite/internal/model"
	"alemsite/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Phone    string     `json:"phone" validate:"required"`
	Name     string     `json:"name" validate:"required,min=2"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"omitempty,oneof=admin moderator user"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionCookie builds the session cookie. Secure and cross-site attributes
// only apply outside local development; login and logout must agree on them
// so the logout overwrite is accepted in secure contexts.
func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Path:     "/",
		Secure:   h.cfg.IsProduction(),
	}
	if h.cfg.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return cookie
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(h.sessionCookie(token, time.Now().Add(auth.TokenExpiry)))
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Phone, req.Name, req.Password, req.Role)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	return c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Token:   token,
		Data:    user,
	})
}

// Login godoc
// @Summary Login with phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Token:   token,
		Data:    user,
	})
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
	}
	return respondData(c, http.StatusOK, user)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Short expiry forces the browser to drop the cookie right away.
	c.SetCookie(h.sessionCookie("none", time.Now().Add(10*time.Second)))
	return respondData(c, http.StatusOK, struct{}{})
}
