package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"goldenkey/internal/auth"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"
)

const (
	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "token"
	// CallerKey is the echo context key holding the resolved caller record.
	CallerKey = "caller"
)

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "authentication error",
		Code:  "UNAUTHENTICATED",
	})
}

// Authenticate verifies the signed session cookie. Missing cookie, bad
// signature or malformed payload all end the request with a 401.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  tokens.Secret(),
		TokenLookup: "cookie:" + SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthenticated(c)
		},
	})
}

// LoadCaller resolves the verified token to a user record and attaches it to
// the context. A token whose user no longer exists is treated the same as an
// invalid token.
func LoadCaller(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated(c)
			}
			claims, ok := token.Claims.(*auth.SessionClaims)
			if !ok {
				return unauthenticated(c)
			}
			id, err := uuid.Parse(claims.UserID)
			if err != nil {
				return unauthenticated(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), id)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(CallerKey, user)
			return next(c)
		}
	}
}

// Caller returns the resolved caller record, if any.
func Caller(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CallerKey).(*model.User)
	return user, ok
}
