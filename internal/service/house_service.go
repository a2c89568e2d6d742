package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"goldenkey/internal/cache"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"
)

const houseListCacheTTL = time.Minute

// HouseAttributes carries the editable fields of a listing.
type HouseAttributes struct {
	Address   string
	Bedrooms  int
	Bathrooms int
	AreaM2    float64
	Price     decimal.Decimal
	Image     string
	Category  string
}

// HouseService exposes browsing, purchase, and admin listing operations.
type HouseService interface {
	Browse(ctx context.Context, category string) ([]model.House, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.House, error)
	Purchase(ctx context.Context, id, buyerID uuid.UUID, payment PaymentDetails) error
	MyHouses(ctx context.Context, userID uuid.UUID) ([]model.House, error)

	AdminBrowse(ctx context.Context, category string, rented bool) ([]model.House, error)
	AdminDetail(ctx context.Context, id uuid.UUID) (*model.House, error)
	Create(ctx context.Context, attrs HouseAttributes) (*model.House, error)
	Upsert(ctx context.Context, id uuid.UUID, attrs HouseAttributes) (*model.House, error)
	Reset(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type houseService struct {
	houseRepo repository.HouseRepository
	payments  *PaymentValidator
	cache     *cache.Client
}

// NewHouseService creates a new house service.
func NewHouseService(houseRepo repository.HouseRepository, payments *PaymentValidator, cache *cache.Client) HouseService {
	return &houseService{
		houseRepo: houseRepo,
		payments:  payments,
		cache:     cache,
	}
}

func houseListCacheKey(category string, rented bool) string {
	return fmt.Sprintf("houses:%s:%t", category, rented)
}

// invalidateHouseLists drops every cached category listing. Mutations don't
// always know which cached combination they touched, so all go.
func invalidateHouseLists(ctx context.Context, c *cache.Client) {
	keys := make([]string, 0, 6)
	for _, category := range []string{model.CategoryHouse, model.CategoryCastle, model.CategoryIndustrial} {
		keys = append(keys, houseListCacheKey(category, false), houseListCacheKey(category, true))
	}
	_ = c.Delete(ctx, keys...)
}

// Browse returns available houses of the category, newest first.
func (s *houseService) Browse(ctx context.Context, category string) ([]model.House, error) {
	return s.listCached(ctx, category, false)
}

// AdminBrowse returns houses of the category filtered by rented status.
func (s *houseService) AdminBrowse(ctx context.Context, category string, rented bool) ([]model.House, error) {
	return s.listCached(ctx, category, rented)
}

func (s *houseService) listCached(ctx context.Context, category string, rented bool) ([]model.House, error) {
	key := houseListCacheKey(category, rented)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.House
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	houses, err := s.houseRepo.ListByCategory(ctx, category, rented)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(houses); err == nil {
		_ = s.cache.Set(ctx, key, payload, houseListCacheTTL)
	}
	return houses, nil
}

// Detail returns a single available house. Rented houses are hidden from
// non-admin callers, so a rented id reads as not found.
func (s *houseService) Detail(ctx context.Context, id uuid.UUID) (*model.House, error) {
	house, err := s.houseRepo.FindAvailableByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

// AdminDetail returns any house regardless of rented state.
func (s *houseService) AdminDetail(ctx context.Context, id uuid.UUID) (*model.House, error) {
	house, err := s.houseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

// Purchase validates the payment and atomically claims the house for the
// buyer. Of two concurrent purchases exactly one wins; the loser observes
// ErrHouseAlreadySold.
func (s *houseService) Purchase(ctx context.Context, id, buyerID uuid.UUID, payment PaymentDetails) error {
	if err := s.payments.Validate(payment); err != nil {
		return err
	}

	rows, err := s.houseRepo.MarkPurchased(ctx, id, buyerID)
	if err != nil {
		return fmt.Errorf("mark purchased: %w", err)
	}
	if rows == 0 {
		// Lost the race or the id never existed; look once to tell them apart.
		if _, err := s.houseRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrHouseNotFound
			}
			return err
		}
		return apperrors.ErrHouseAlreadySold
	}

	invalidateHouseLists(ctx, s.cache)
	return nil
}

// MyHouses returns the houses the user has purchased, newest first.
func (s *houseService) MyHouses(ctx context.Context, userID uuid.UUID) ([]model.House, error) {
	return s.houseRepo.ListRentedByOwner(ctx, userID)
}

// Create inserts a new available listing.
func (s *houseService) Create(ctx context.Context, attrs HouseAttributes) (*model.House, error) {
	house := &model.House{
		ID:        uuid.New(),
		Address:   attrs.Address,
		Bedrooms:  attrs.Bedrooms,
		Bathrooms: attrs.Bathrooms,
		AreaM2:    attrs.AreaM2,
		Price:     attrs.Price,
		Image:     attrs.Image,
		Category:  attrs.Category,
		Rented:    false,
	}
	if err := s.houseRepo.Create(ctx, house); err != nil {
		return nil, fmt.Errorf("create house: %w", err)
	}

	invalidateHouseLists(ctx, s.cache)
	return house, nil
}

// Upsert writes the attributes under the given id, creating the listing when
// it does not exist yet. Rented state and ownership are left untouched.
func (s *houseService) Upsert(ctx context.Context, id uuid.UUID, attrs HouseAttributes) (*model.House, error) {
	house := &model.House{
		ID:        id,
		Address:   attrs.Address,
		Bedrooms:  attrs.Bedrooms,
		Bathrooms: attrs.Bathrooms,
		AreaM2:    attrs.AreaM2,
		Price:     attrs.Price,
		Image:     attrs.Image,
		Category:  attrs.Category,
	}
	if err := s.houseRepo.Upsert(ctx, house); err != nil {
		return nil, fmt.Errorf("upsert house: %w", err)
	}

	invalidateHouseLists(ctx, s.cache)
	return house, nil
}

// Reset clears ownership and returns the house to the available state.
func (s *houseService) Reset(ctx context.Context, id uuid.UUID) error {
	if _, err := s.houseRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHouseNotFound
		}
		return err
	}
	if err := s.houseRepo.Reset(ctx, id); err != nil {
		return fmt.Errorf("reset house: %w", err)
	}

	invalidateHouseLists(ctx, s.cache)
	return nil
}

// Delete removes the listing permanently.
func (s *houseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.houseRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHouseNotFound
		}
		return err
	}
	if err := s.houseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete house: %w", err)
	}

	invalidateHouseLists(ctx, s.cache)
	return nil
}
