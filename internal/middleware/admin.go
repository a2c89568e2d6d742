package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "goldenkey/internal/errors"
)

// RequireAdmin gates a route to administrators. It assumes LoadCaller already
// ran; an absent caller is rejected as well.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := Caller(c)
			if !ok || !caller.IsAdmin() {
				return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "only administrators can access this resource",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
