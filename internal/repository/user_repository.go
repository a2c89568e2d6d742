package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goldenkey/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ExistsByEmailOrUsername reports whether any user other than exclude
	// already holds the email or username. Pass uuid.Nil to check all users.
	ExistsByEmailOrUsername(ctx context.Context, exclude uuid.UUID, email, username string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, email, username, phone, description string) error
	SetRecoveryToken(ctx context.Context, email, token string) error
	FindByEmailAndRecoveryToken(ctx context.Context, email, token string) (*model.User, error)
	// UpdatePassword stores a new hash and clears the recovery token in the
	// same statement, making the token single-use.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ListExcept(ctx context.Context, exclude uuid.UUID) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, exclude uuid.UUID, email, username string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? OR username = ?", email, username)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, email, username, phone, description string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email":       email,
			"username":    username,
			"phone":       phone,
			"description": description,
		}).Error
}

func (r *userRepository) SetRecoveryToken(ctx context.Context, email, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("recovery_token", token).Error
}

func (r *userRepository) FindByEmailAndRecoveryToken(ctx context.Context, email, token string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND recovery_token = ? AND recovery_token <> ''", email, token).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":  passwordHash,
			"recovery_token": "",
		}).Error
}

func (r *userRepository) ListExcept(ctx context.Context, exclude uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("id <> ?", exclude).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}
