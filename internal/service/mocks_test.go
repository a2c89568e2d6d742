package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"goldenkey/internal/model"
	"goldenkey/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrUsername(ctx context.Context, exclude uuid.UUID, email, username string) (bool, error) {
	args := m.Called(ctx, exclude, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, email, username, phone, description string) error {
	args := m.Called(ctx, id, email, username, phone, description)
	return args.Error(0)
}

func (m *MockUserRepository) SetRecoveryToken(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmailAndRecoveryToken(ctx context.Context, email, token string) (*model.User, error) {
	args := m.Called(ctx, email, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) ListExcept(ctx context.Context, exclude uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHouseRepository is a mock implementation of repository.HouseRepository.
type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) Create(ctx context.Context, house *model.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) Upsert(ctx context.Context, house *model.House) error {
	args := m.Called(ctx, house)
	return args.Error(0)
}

func (m *MockHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.House), args.Error(1)
}

func (m *MockHouseRepository) FindAvailableByID(ctx context.Context, id uuid.UUID) (*model.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.House), args.Error(1)
}

func (m *MockHouseRepository) ListByCategory(ctx context.Context, category string, rented bool) ([]model.House, error) {
	args := m.Called(ctx, category, rented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.House), args.Error(1)
}

func (m *MockHouseRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.House), args.Error(1)
}

func (m *MockHouseRepository) ListRentedByOwner(ctx context.Context, userID uuid.UUID) ([]model.House, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.House), args.Error(1)
}

func (m *MockHouseRepository) MarkPurchased(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHouseRepository) Reset(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHouseRepository) ResetByOwner(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockHouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// passthroughTx satisfies repository.TxManager by running the body directly
// against the given mocks, counting invocations.
type passthroughTx struct {
	users  repository.UserRepository
	houses repository.HouseRepository
	calls  int
}

func (p *passthroughTx) WithTransaction(ctx context.Context, fn func(repository.UserRepository, repository.HouseRepository) error) error {
	p.calls++
	return fn(p.users, p.houses)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	args := m.Called(ctx, toEmail, resetLink)
	return args.Error(0)
}
