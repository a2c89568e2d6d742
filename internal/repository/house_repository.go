package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goldenkey/internal/model"
)

// HouseRepository defines house persistence operations.
type HouseRepository interface {
	Create(ctx context.Context, house *model.House) error
	// Upsert inserts or replaces the listed attributes for the given id,
	// leaving rented/owner state untouched on existing rows.
	Upsert(ctx context.Context, house *model.House) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.House, error)
	FindAvailableByID(ctx context.Context, id uuid.UUID) (*model.House, error)
	ListByCategory(ctx context.Context, category string, rented bool) ([]model.House, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error)
	ListRentedByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error)
	// MarkPurchased atomically flips rented false -> true and assigns the
	// owner. Returns the number of rows affected: 0 means the house was
	// missing or already sold, 1 means this caller won the purchase.
	MarkPurchased(ctx context.Context, id, userID uuid.UUID) (int64, error)
	Reset(ctx context.Context, id uuid.UUID) error
	ResetByOwner(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type houseRepository struct {
	db *gorm.DB
}

// NewHouseRepository builds a GORM-backed house repository.
func NewHouseRepository(db *gorm.DB) HouseRepository {
	return &houseRepository{db: db}
}

func (r *houseRepository) Create(ctx context.Context, house *model.House) error {
	return r.db.WithContext(ctx).Create(house).Error
}

func (r *houseRepository) Upsert(ctx context.Context, house *model.House) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"address", "bedrooms", "bathrooms", "area_m2", "price", "image", "category",
		}),
	}).Create(house).Error
}

func (r *houseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.House, error) {
	var house model.House
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&house).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

func (r *houseRepository) FindAvailableByID(ctx context.Context, id uuid.UUID) (*model.House, error) {
	var house model.House
	if err := r.db.WithContext(ctx).
		Where("id = ? AND rented = ?", id, false).
		First(&house).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

func (r *houseRepository) ListByCategory(ctx context.Context, category string, rented bool) ([]model.House, error) {
	var houses []model.House
	if err := r.db.WithContext(ctx).
		Where("category = ? AND rented = ?", category, rented).
		Order("created_at DESC").
		Find(&houses).Error; err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *houseRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error) {
	var houses []model.House
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&houses).Error; err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *houseRepository) ListRentedByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error) {
	var houses []model.House
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND rented = ?", userID, true).
		Order("created_at DESC").
		Find(&houses).Error; err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *houseRepository) MarkPurchased(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	// Single conditional UPDATE so two concurrent purchases cannot both win.
	res := r.db.WithContext(ctx).Model(&model.House{}).
		Where("id = ? AND rented = ?", id, false).
		Updates(map[string]interface{}{
			"rented":  true,
			"user_id": userID,
		})
	return res.RowsAffected, res.Error
}

func (r *houseRepository) Reset(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.House{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rented":  false,
			"user_id": nil,
		}).Error
}

func (r *houseRepository) ResetByOwner(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.House{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rented":  false,
			"user_id": nil,
		}).Error
}

func (r *houseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.House{}).Error
}
