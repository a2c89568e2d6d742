package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"goldenkey/internal/config"
	"goldenkey/internal/db"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"
)

// Seeds an administrator account and a handful of demo listings so a fresh
// database is browsable immediately.
func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.House{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	houseRepo := repository.NewHouseRepository(gormDB)

	adminEmail := envOr("ADMIN_EMAIL", "admin@golden-key.example")
	adminPassword := envOr("ADMIN_PASSWORD", "Admin123#")

	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
		log.Printf("Admin %s already exists, skipping user seed", adminEmail)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up admin: %v", err)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := &model.User{
			Email:        adminEmail,
			Username:     "goldenkey",
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin %s", adminEmail)
	}

	houses := []model.House{
		{
			Address:   "12 Alameda Street, Seville",
			Bedrooms:  3,
			Bathrooms: 2,
			AreaM2:    120,
			Price:     decimal.NewFromInt(240000),
			Image:     "https://images.golden-key.example/alameda-12.jpg",
			Category:  model.CategoryHouse,
		},
		{
			Address:   "Castle of Loarre Road 1, Huesca",
			Bedrooms:  14,
			Bathrooms: 6,
			AreaM2:    2300,
			Price:     decimal.NewFromInt(4750000),
			Image:     "https://images.golden-key.example/loarre.jpg",
			Category:  model.CategoryCastle,
		},
		{
			Address:   "Industrial Park Lot 7, Zaragoza",
			Bedrooms:  0,
			Bathrooms: 2,
			AreaM2:    860,
			Price:     decimal.NewFromInt(510000),
			Image:     "https://images.golden-key.example/lot-7.jpg",
			Category:  model.CategoryIndustrial,
		},
	}

	created := 0
	for i := range houses {
		if err := houseRepo.Create(ctx, &houses[i]); err != nil {
			log.Printf("Skipping house %q: %v", houses[i].Address, err)
			continue
		}
		created++
	}
	log.Printf("Seed complete: %d demo houses created", created)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
