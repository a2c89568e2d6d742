package router

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"goldenkey/internal/auth"
	"goldenkey/internal/config"
	"goldenkey/internal/handler"
	"goldenkey/internal/middleware"
	"goldenkey/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	houseHandler *handler.HouseHandler,
	passwordHandler *handler.PasswordHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderContentType, "X-CSRF-Token"},
	}))

	// Anti-forgery token, double-submit via header. The reset flow is the one
	// mutating route reachable without a prior page load, so it is exempt.
	e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSecure:   cfg.SecureCookies,
		CookieHTTPOnly: false,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/changePassword/")
		},
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/csrf-token", func(c echo.Context) error {
		token, _ := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string)
		return c.JSON(http.StatusOK, echo.Map{"csrfToken": token})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/forgotPassword", passwordHandler.ForgotPassword)
	e.POST("/changePassword/:token", passwordHandler.ChangePassword)
	e.GET("/houses/:category", houseHandler.Browse)

	// Routes requiring a resolved caller
	secured := e.Group("", middleware.Authenticate(tokens), middleware.LoadCaller(userRepo))
	secured.GET("/logout", authHandler.Logout)
	secured.GET("/profile", profileHandler.GetProfile)
	secured.POST("/editProfile", profileHandler.EditProfile)
	secured.GET("/getMyHouses", profileHandler.MyHouses)
	secured.GET("/house/:id", houseHandler.Detail)
	secured.POST("/buyHouse/:id", houseHandler.Buy)

	// Administrator routes
	admin := secured.Group("", middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/admin/users/:id", adminHandler.GetUserDetail)
	admin.GET("/admin/delete_user/:id", adminHandler.DeleteUser)
	admin.GET("/admin/houses/:category/:rented", adminHandler.BrowseHouses)
	admin.GET("/admin/house/:id", adminHandler.HouseDetail)
	admin.POST("/admin/house/:id", adminHandler.UpsertHouse)
	admin.POST("/admin/add_house", adminHandler.AddHouse)
	admin.GET("/admin/reset_house/:id", adminHandler.ResetHouse)
	admin.GET("/admin/delete_house/:id", adminHandler.DeleteHouse)
}

var (
	usernameCharsRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)
	letterRegex        = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex         = regexp.MustCompile(`[0-9]`)
	upperRegex         = regexp.MustCompile(`[A-Z]`)
	specialRegex       = regexp.MustCompile(`[#$€&%]`)
	phoneRegex         = regexp.MustCompile(`^[0-9]{7,15}$`)
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the portal's field rules.
func NewValidator() *CustomValidator {
	v := validator.New()

	// 5-15 characters of letters, digits, underscore or dot, at least one letter.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) >= 5 && len(s) <= 15 &&
			usernameCharsRegex.MatchString(s) && letterRegex.MatchString(s)
	})

	// 8-30 characters with at least one digit, uppercase letter and special char.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		length := len([]rune(s))
		return length >= 8 && length <= 30 &&
			digitRegex.MatchString(s) && upperRegex.MatchString(s) && specialRegex.MatchString(s)
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
