package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function with repositories bound to a single transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(users UserRepository, houses HouseRepository) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager builds a GORM-backed transaction manager.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(UserRepository, HouseRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx), NewHouseRepository(tx))
	})
}
