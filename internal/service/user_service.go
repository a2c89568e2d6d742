package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goldenkey/internal/cache"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile and user administration operations.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	EditProfile(ctx context.Context, caller *model.User, email, username, phone, description string) error
	ListUsers(ctx context.Context, exclude uuid.UUID) ([]model.User, error)
	GetUserDetail(ctx context.Context, id uuid.UUID) (*model.User, []model.House, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo  repository.UserRepository
	houseRepo repository.HouseRepository
	tx        repository.TxManager
	cache     *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, houseRepo repository.HouseRepository, tx repository.TxManager, cache *cache.Client) UserService {
	return &userService{
		userRepo:  userRepo,
		houseRepo: houseRepo,
		tx:        tx,
		cache:     cache,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetProfile returns the user record by id.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// EditProfile updates the caller's email, username, phone and description.
// At least one field must change, and email/username must not collide with a
// different account.
func (s *userService) EditProfile(ctx context.Context, caller *model.User, email, username, phone, description string) error {
	if email == caller.Email && username == caller.Username &&
		phone == caller.Phone && description == caller.Description {
		return apperrors.ErrNoChanges
	}

	taken, err := s.userRepo.ExistsByEmailOrUsername(ctx, caller.ID, email, username)
	if err != nil {
		return fmt.Errorf("check profile collision: %w", err)
	}
	if taken {
		return apperrors.ErrEmailOrUsernameTaken
	}

	if err := s.userRepo.UpdateProfile(ctx, caller.ID, email, username, phone, description); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailOrUsernameTaken
		}
		return fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, userCacheKey(caller.ID))
	return nil
}

// ListUsers returns every user except the caller, newest first.
func (s *userService) ListUsers(ctx context.Context, exclude uuid.UUID) ([]model.User, error) {
	return s.userRepo.ListExcept(ctx, exclude)
}

// GetUserDetail returns a user together with every house they own.
func (s *userService) GetUserDetail(ctx context.Context, id uuid.UUID) (*model.User, []model.House, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, err
	}

	houses, err := s.houseRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list user houses: %w", err)
	}
	return user, houses, nil
}

// DeleteUser removes the user and cascades: every house they owned returns
// to the available state.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	// Delete and cascade atomically; a failed reset must not leave rented
	// houses referencing a removed user.
	err := s.tx.WithTransaction(ctx, func(users repository.UserRepository, houses repository.HouseRepository) error {
		if err := users.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := houses.ResetByOwner(ctx, id); err != nil {
			return fmt.Errorf("reset owned houses: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, userCacheKey(id))
	invalidateHouseLists(ctx, s.cache)
	return nil
}
