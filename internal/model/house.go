package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// House categories.
const (
	CategoryHouse      = "house"
	CategoryCastle     = "castle"
	CategoryIndustrial = "industrial"
)

// ValidCategory reports whether c is one of the fixed house categories.
func ValidCategory(c string) bool {
	return c == CategoryHouse || c == CategoryCastle || c == CategoryIndustrial
}

// House represents a property listed for sale.
//
// Invariant: Rented=false implies UserID is nil; Rented=true implies UserID
// references the buyer until an admin reset or the buyer's deletion.
type House struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Address   string          `json:"address" gorm:"size:255;not null"`
	Bedrooms  int             `json:"bedrooms" gorm:"not null"`
	Bathrooms int             `json:"bathrooms" gorm:"not null"`
	AreaM2    float64         `json:"area_m2" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Image     string          `json:"image" gorm:"size:512;not null"`
	Category  string          `json:"category" gorm:"size:20;not null;index"`
	Rented    bool            `json:"rented" gorm:"not null;default:false;index"`
	UserID    *uuid.UUID      `json:"user_id,omitempty" gorm:"type:char(36);index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (h *House) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
