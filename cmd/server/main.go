package main

import (
	"log"
	"net/http"
	"os"

	_ "goldenkey/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"goldenkey/internal/auth"
	"goldenkey/internal/cache"
	"goldenkey/internal/config"
	"goldenkey/internal/db"
	"goldenkey/internal/handler"
	"goldenkey/internal/mail"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"
	"goldenkey/internal/router"
	"goldenkey/internal/service"
)

// @title Golden Key API
// @version 1.0
// @description Real-estate listing and purchase backend with cookie-session authentication.
// @host localhost:3000
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.House{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.House{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	houseRepo := repository.NewHouseRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Collaborators
	tokens := auth.NewTokenService(cfg.JWTSecret)
	mailer := mail.NewBrevoMailer(cfg.BrevoAPIKey, cfg.SenderName, cfg.SenderEmail)
	payments := service.NewPaymentValidator()

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, houseRepo, txManager, cacheClient)
	houseService := service.NewHouseService(houseRepo, payments, cacheClient)
	passwordService := service.NewPasswordService(userRepo, tokens, mailer, cfg.FrontendURL)

	// Handlers
	cookies := handler.CookieOptions{Domain: cfg.CookieDomain, Secure: cfg.SecureCookies}
	authHandler := handler.NewAuthHandler(authService, cookies)
	profileHandler := handler.NewProfileHandler(userService, houseService)
	houseHandler := handler.NewHouseHandler(houseService)
	passwordHandler := handler.NewPasswordHandler(passwordService)
	adminHandler := handler.NewAdminHandler(userService, houseService)

	router.Register(
		e,
		cfg,
		tokens,
		userRepo,
		authHandler,
		profileHandler,
		houseHandler,
		passwordHandler,
		adminHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
