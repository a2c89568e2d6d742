package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"goldenkey/internal/auth"
	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "a@b.com",
			username: "abcde1",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmailOrUsername", mock.Anything, uuid.Nil, "a@b.com", "abcde1").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already in use",
			email:    "a@b.com",
			username: "other1",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmailOrUsername", mock.Anything, uuid.Nil, "a@b.com", "other1").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailOrUsernameTaken,
		},
		{
			name:     "username already in use",
			email:    "fresh@b.com",
			username: "abcde1",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmailOrUsername", mock.Anything, uuid.Nil, "fresh@b.com", "abcde1").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailOrUsernameTaken,
		},
		{
			name:     "racing registration that trips the unique index",
			email:    "a@b.com",
			username: "abcde1",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmailOrUsername", mock.Anything, uuid.Nil, "a@b.com", "abcde1").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailOrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret")
			svc := NewAuthService(mockRepo, tokens)

			user, token, err := svc.Register(context.Background(), tt.email, tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleClient, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)

				// Issued token must decode back to the new user id.
				id, verr := tokens.VerifySession(token)
				assert.NoError(t, verr)
				assert.Equal(t, user.ID, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1#"), bcryptCost)
	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@b.com",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID:           userID,
					Email:        "a@b.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "no account for email",
			email:    "missing@b.com",
			password: "Abcdef1#",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "missing@b.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAccountNotFound,
		},
		{
			name:     "wrong password",
			email:    "a@b.com",
			password: "Wrong123#",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID:           userID,
					Email:        "a@b.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			tokens := auth.NewTokenService("test-secret")
			svc := NewAuthService(mockRepo, tokens)

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)

				id, verr := tokens.VerifySession(token)
				assert.NoError(t, verr)
				assert.Equal(t, userID, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
