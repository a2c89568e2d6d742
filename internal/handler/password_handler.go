package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goldenkey/internal/service"
)

// PasswordHandler handles the password recovery flow.
type PasswordHandler struct {
	passwordService service.PasswordService
}

// NewPasswordHandler creates a new password handler.
func NewPasswordHandler(passwordService service.PasswordService) *PasswordHandler {
	return &PasswordHandler{passwordService: passwordService}
}

// ForgotPasswordRequest asks for a recovery mail.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest carries the new password pair.
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ForgotPassword godoc
// @Summary Send a password recovery mail
// @Tags password
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /forgotPassword [post]
func (h *PasswordHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.passwordService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "recovery mail sent successfully"})
}

// ChangePassword godoc
// @Summary Change password with a recovery token
// @Tags password
// @Accept json
// @Produce json
// @Param token path string true "Recovery token"
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /changePassword/{token} [post]
func (h *PasswordHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	err := h.passwordService.ChangePassword(c.Request().Context(), c.Param("token"), req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "password changed successfully"})
}
