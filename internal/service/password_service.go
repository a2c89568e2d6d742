package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"goldenkey/internal/auth"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/mail"
	"goldenkey/internal/repository"
)

// PasswordService handles the password recovery flow.
type PasswordService interface {
	ForgotPassword(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, token, newPassword, confirmPassword string) error
}

type passwordService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenService
	mailer      mail.Mailer
	frontendURL string
}

// NewPasswordService creates a new password recovery service.
func NewPasswordService(userRepo repository.UserRepository, tokens *auth.TokenService, mailer mail.Mailer, frontendURL string) PasswordService {
	return &passwordService{
		userRepo:    userRepo,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// ForgotPassword issues a fresh recovery token, stores it on the account and
// mails a reset link. A previously issued token is overwritten.
func (s *passwordService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	token, err := s.tokens.IssueRecovery(email)
	if err != nil {
		return fmt.Errorf("issue recovery token: %w", err)
	}

	if err := s.userRepo.SetRecoveryToken(ctx, email, token); err != nil {
		return fmt.Errorf("store recovery token: %w", err)
	}

	link := fmt.Sprintf("%s/changePassword/%s", s.frontendURL, token)
	if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	log.Printf("password reset mail dispatched for %s", email)
	return nil
}

// ChangePassword consumes a recovery token and replaces the password. The
// token must verify and match the stored copy, the confirmation must match,
// and the new password must differ from the current one.
func (s *passwordService) ChangePassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	email, err := s.tokens.VerifyRecovery(token)
	if err != nil {
		return apperrors.ErrInvalidRecoveryToken
	}

	user, err := s.userRepo.FindByEmailAndRecoveryToken(ctx, email, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidRecoveryToken
		}
		return fmt.Errorf("find account by token: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return apperrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// Clears the recovery token in the same update; the token is single use.
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
