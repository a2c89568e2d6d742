package db

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens the portal database. Duplicate-key violations are translated
// so callers can match gorm.ErrDuplicatedKey instead of driver error codes.
func NewMySQL(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn is empty")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
