package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/middleware"
	"goldenkey/internal/model"
	"goldenkey/internal/service"
)

// HouseHandler handles public browsing and purchase endpoints.
type HouseHandler struct {
	houseService service.HouseService
}

// NewHouseHandler creates a new house handler.
func NewHouseHandler(houseService service.HouseService) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

// BuyHouseRequest carries the payment details for a purchase.
type BuyHouseRequest struct {
	HolderName string `json:"holder_name" validate:"required"`
	CardNumber string `json:"card_number" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
	Year       int    `json:"year" validate:"required,min=1000"`
}

// parseCategory validates the :category path parameter, answering with a 400
// itself when it is not one of the fixed categories.
func parseCategory(c echo.Context) (string, bool) {
	category := c.Param("category")
	if !model.ValidCategory(category) {
		_ = c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "category must be house, castle or industrial",
			Code:  "VALIDATION_FAILED",
		})
		return "", false
	}
	return category, true
}

// parseID validates the :id path parameter, answering with a 400 itself when
// it is not a UUID.
func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "VALIDATION_FAILED",
		})
		return uuid.Nil, false
	}
	return id, true
}

// Browse godoc
// @Summary List available houses of a category
// @Tags houses
// @Produce json
// @Param category path string true "Category" Enums(house, castle, industrial)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /houses/{category} [get]
func (h *HouseHandler) Browse(c echo.Context) error {
	category, ok := parseCategory(c)
	if !ok {
		return nil
	}

	houses, err := h.houseService.Browse(c.Request().Context(), category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"houses": houses})
}

// Detail godoc
// @Summary Show one available house
// @Tags houses
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /house/{id} [get]
func (h *HouseHandler) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	house, err := h.houseService.Detail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"house": house})
}

// Buy godoc
// @Summary Purchase an available house
// @Tags houses
// @Accept json
// @Produce json
// @Param id path string true "House ID"
// @Param request body BuyHouseRequest true "Payment details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /buyHouse/{id} [post]
func (h *HouseHandler) Buy(c echo.Context) error {
	caller, ok := middleware.Caller(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication error")
	}

	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req BuyHouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	payment := service.PaymentDetails{
		HolderName: req.HolderName,
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		Month:      req.Month,
		Year:       req.Year,
	}
	if err := h.houseService.Purchase(c.Request().Context(), id, caller.ID, payment); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": "house purchased successfully"})
}
