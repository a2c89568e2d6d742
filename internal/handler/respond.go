package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "goldenkey/internal/errors"
)

// respondError maps a domain error to its HTTP status and error body.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// respondValidationError reports the first violated field rule with a 400.
func respondValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: firstViolation(err),
		Code:  "VALIDATION_FAILED",
	})
}

func firstViolation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	return violationMessage(verrs[0])
}

func violationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s is too short or too small (minimum %s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long or too large (maximum %s)", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "username":
		return fmt.Sprintf("%s must be 5-15 characters of letters, digits, underscore or dot, with at least one letter", field)
	case "password":
		return fmt.Sprintf("%s must be 8-30 characters with at least one digit, one uppercase letter and one of #$€&%%", field)
	case "phone":
		return fmt.Sprintf("%s must contain 7-15 digits", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
