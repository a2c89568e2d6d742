package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
)

func TestUserService_EditProfile(t *testing.T) {
	caller := &model.User{
		ID:          uuid.New(),
		Email:       "a@b.com",
		Username:    "abcde1",
		Phone:       "1234567",
		Description: "hi",
	}

	t.Run("identical fields are rejected", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockHouseRepository), &passthroughTx{}, nil)
		err := svc.EditProfile(context.Background(), caller, "a@b.com", "abcde1", "1234567", "hi")
		assert.ErrorIs(t, err, apperrors.ErrNoChanges)
	})

	t.Run("collision with another account is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmailOrUsername", mock.Anything, caller.ID, "new@b.com", "abcde1").Return(true, nil)

		svc := NewUserService(userRepo, new(MockHouseRepository), &passthroughTx{}, nil)
		err := svc.EditProfile(context.Background(), caller, "new@b.com", "abcde1", "1234567", "hi")
		assert.ErrorIs(t, err, apperrors.ErrEmailOrUsernameTaken)
		userRepo.AssertExpectations(t)
	})

	t.Run("racing edit that trips the unique index reads as a collision", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmailOrUsername", mock.Anything, caller.ID, "new@b.com", "abcde1").Return(false, nil)
		userRepo.On("UpdateProfile", mock.Anything, caller.ID, "new@b.com", "abcde1", "1234567", "hi").Return(gorm.ErrDuplicatedKey)

		svc := NewUserService(userRepo, new(MockHouseRepository), &passthroughTx{}, nil)
		err := svc.EditProfile(context.Background(), caller, "new@b.com", "abcde1", "1234567", "hi")
		assert.ErrorIs(t, err, apperrors.ErrEmailOrUsernameTaken)
		userRepo.AssertExpectations(t)
	})

	t.Run("changed fields are written", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("ExistsByEmailOrUsername", mock.Anything, caller.ID, "new@b.com", "abcde1").Return(false, nil)
		userRepo.On("UpdateProfile", mock.Anything, caller.ID, "new@b.com", "abcde1", "1234567", "hi").Return(nil)

		svc := NewUserService(userRepo, new(MockHouseRepository), &passthroughTx{}, nil)
		err := svc.EditProfile(context.Background(), caller, "new@b.com", "abcde1", "1234567", "hi")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	t.Run("deletion cascades to owned houses inside one transaction", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		houseRepo := new(MockHouseRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("Delete", mock.Anything, userID).Return(nil)
		houseRepo.On("ResetByOwner", mock.Anything, userID).Return(nil)

		tx := &passthroughTx{users: userRepo, houses: houseRepo}
		svc := NewUserService(userRepo, houseRepo, tx, nil)
		assert.NoError(t, svc.DeleteUser(context.Background(), userID))

		assert.Equal(t, 1, tx.calls)
		userRepo.AssertExpectations(t)
		houseRepo.AssertExpectations(t)
	})

	t.Run("failed cascade surfaces the error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		houseRepo := new(MockHouseRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("Delete", mock.Anything, userID).Return(nil)
		houseRepo.On("ResetByOwner", mock.Anything, userID).Return(gorm.ErrInvalidTransaction)

		tx := &passthroughTx{users: userRepo, houses: houseRepo}
		svc := NewUserService(userRepo, houseRepo, tx, nil)
		assert.Error(t, svc.DeleteUser(context.Background(), userID))
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("missing user fails without touching houses", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		houseRepo := new(MockHouseRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		tx := &passthroughTx{users: userRepo, houses: houseRepo}
		svc := NewUserService(userRepo, houseRepo, tx, nil)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), userID), apperrors.ErrUserNotFound)

		assert.Equal(t, 0, tx.calls)
		userRepo.AssertExpectations(t)
		houseRepo.AssertNotCalled(t, "ResetByOwner", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetUserDetail(t *testing.T) {
	userID := uuid.New()

	userRepo := new(MockUserRepository)
	houseRepo := new(MockHouseRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	houseRepo.On("ListByOwner", mock.Anything, userID).Return([]model.House{{UserID: &userID, Rented: true}}, nil)

	svc := NewUserService(userRepo, houseRepo, &passthroughTx{}, nil)
	user, houses, err := svc.GetUserDetail(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Len(t, houses, 1)
}
