package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"goldenkey/internal/auth"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
	"goldenkey/internal/repository"

	"github.com/google/uuid"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Register creates a client account and issues a session token for it.
func (s *authService) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	taken, err := s.userRepo.ExistsByEmailOrUsername(ctx, uuid.Nil, email, username)
	if err != nil {
		return nil, "", fmt.Errorf("check account existence: %w", err)
	}
	if taken {
		return nil, "", apperrors.ErrEmailOrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleClient,
		RegisteredAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the existence check; the
		// loser trips the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailOrUsernameTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrAccountNotFound
		}
		return nil, "", fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	return user, token, nil
}
