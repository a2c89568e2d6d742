package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"goldenkey/internal/middleware"
	"goldenkey/internal/service"
)

// AdminHandler handles user and listing administration.
type AdminHandler struct {
	userService  service.UserService
	houseService service.HouseService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService, houseService service.HouseService) *AdminHandler {
	return &AdminHandler{userService: userService, houseService: houseService}
}

// HouseRequest carries the attributes of a listing for create and edit.
type HouseRequest struct {
	Address   string  `json:"address" validate:"required"`
	Bedrooms  int     `json:"bedrooms" validate:"min=0"`
	Bathrooms int     `json:"bathrooms" validate:"min=0"`
	AreaM2    float64 `json:"area_m2" validate:"min=0"`
	Price     float64 `json:"price" validate:"min=0"`
	Image     string  `json:"image" validate:"required"`
	Category  string  `json:"category" validate:"required,oneof=house castle industrial"`
}

func (r *HouseRequest) attributes() service.HouseAttributes {
	return service.HouseAttributes{
		Address:   r.Address,
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
		AreaM2:    r.AreaM2,
		Price:     decimal.NewFromFloat(r.Price),
		Image:     r.Image,
		Category:  r.Category,
	}
}

// ListUsers godoc
// @Summary List all users except the caller
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication error")
	}

	users, err := h.userService.ListUsers(c.Request().Context(), caller.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GetUserDetail godoc
// @Summary Show a user and the houses they own
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUserDetail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	user, houses, err := h.userService.GetUserDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"userData": echo.Map{"user": user, "houses": houses},
	})
}

// DeleteUser godoc
// @Summary Delete a user and release their houses
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/delete_user/{id} [get]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "user deleted successfully"})
}

// BrowseHouses godoc
// @Summary List houses of a category filtered by rented state
// @Tags admin
// @Produce json
// @Param category path string true "Category" Enums(house, castle, industrial)
// @Param rented path bool true "Rented state"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/houses/{category}/{rented} [get]
func (h *AdminHandler) BrowseHouses(c echo.Context) error {
	category, ok := parseCategory(c)
	if !ok {
		return nil
	}
	// Mirrors the frontend contract: anything but "true" means available.
	rented, _ := strconv.ParseBool(c.Param("rented"))

	houses, err := h.houseService.AdminBrowse(c.Request().Context(), category, rented)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"houses": houses})
}

// HouseDetail godoc
// @Summary Show any house, rented or not
// @Tags admin
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/house/{id} [get]
func (h *AdminHandler) HouseDetail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	house, err := h.houseService.AdminDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"house": house})
}

// UpsertHouse godoc
// @Summary Create or update a house under a fixed id
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "House ID"
// @Param request body HouseRequest true "House attributes"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/house/{id} [post]
func (h *AdminHandler) UpsertHouse(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req HouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	if _, err := h.houseService.Upsert(c.Request().Context(), id, req.attributes()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "house data saved successfully"})
}

// AddHouse godoc
// @Summary Create a new house
// @Tags admin
// @Accept json
// @Produce json
// @Param request body HouseRequest true "House attributes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/add_house [post]
func (h *AdminHandler) AddHouse(c echo.Context) error {
	var req HouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	house, err := h.houseService.Create(c.Request().Context(), req.attributes())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "house created successfully", "house": house})
}

// ResetHouse godoc
// @Summary Return a house to the available state
// @Tags admin
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reset_house/{id} [get]
func (h *AdminHandler) ResetHouse(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.houseService.Reset(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "house is available for purchase again"})
}

// DeleteHouse godoc
// @Summary Delete a house permanently
// @Tags admin
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/delete_house/{id} [get]
func (h *AdminHandler) DeleteHouse(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	if err := h.houseService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "house deleted successfully"})
}
