package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"goldenkey/internal/middleware"
	"goldenkey/internal/service"
)

// CookieOptions controls how the session cookie is issued.
type CookieOptions struct {
	Domain string
	Secure bool
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	cookies     CookieOptions
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,min=6,max=150,email"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cookies.Secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: sameSite,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	_, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(h.sessionCookie(token, 0))
	return c.JSON(http.StatusOK, echo.Map{"success": "user registered successfully"})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	_, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(h.sessionCookie(token, 0))
	return c.JSON(http.StatusOK, echo.Map{"success": "user logged in successfully"})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := h.sessionCookie("", -1)
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, echo.Map{"success": "session closed successfully"})
}
