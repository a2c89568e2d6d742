package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goldenkey/internal/middleware"
	"goldenkey/internal/service"
)

// ProfileHandler handles self-profile endpoints.
type ProfileHandler struct {
	userService  service.UserService
	houseService service.HouseService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(userService service.UserService, houseService service.HouseService) *ProfileHandler {
	return &ProfileHandler{userService: userService, houseService: houseService}
}

// EditProfileRequest represents a profile update.
type EditProfileRequest struct {
	Email       string `json:"email" validate:"required,min=6,max=150,email"`
	Username    string `json:"username" validate:"required,username"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Description string `json:"description" validate:"max=100"`
}

// GetProfile godoc
// @Summary Return the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication error")
	}

	// Resolve through the service so the profile cache serves repeat reads.
	user, err := h.userService.GetProfile(c.Request().Context(), caller.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// EditProfile godoc
// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body EditProfileRequest true "New profile fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /editProfile [post]
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication error")
	}

	var req EditProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	err := h.userService.EditProfile(c.Request().Context(), caller, req.Email, req.Username, req.Phone, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "profile updated successfully"})
}

// MyHouses godoc
// @Summary List the caller's purchased houses
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /getMyHouses [get]
func (h *ProfileHandler) MyHouses(c echo.Context) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication error")
	}

	houses, err := h.houseService.MyHouses(c.Request().Context(), caller.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"houses": houses})
}
