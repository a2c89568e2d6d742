package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "goldenkey/internal/errors"
	"goldenkey/internal/model"
)

func validPayment() PaymentDetails {
	return PaymentDetails{
		HolderName: "Jane Buyer",
		CardNumber: "4111111111111111",
		CVV:        "123",
		Month:      12,
		Year:       time.Now().Year() + 1,
	}
}

func newHouseService(repo *MockHouseRepository) HouseService {
	return NewHouseService(repo, NewPaymentValidator(), nil)
}

func TestHouseService_Purchase(t *testing.T) {
	houseID := uuid.New()
	buyerID := uuid.New()

	tests := []struct {
		name          string
		payment       PaymentDetails
		setupMock     func(*MockHouseRepository)
		expectedError error
	}{
		{
			name:    "successful purchase",
			payment: validPayment(),
			setupMock: func(m *MockHouseRepository) {
				m.On("MarkPurchased", mock.Anything, houseID, buyerID).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name:    "already sold",
			payment: validPayment(),
			setupMock: func(m *MockHouseRepository) {
				m.On("MarkPurchased", mock.Anything, houseID, buyerID).Return(int64(0), nil)
				m.On("FindByID", mock.Anything, houseID).Return(&model.House{ID: houseID, Rented: true}, nil)
			},
			expectedError: apperrors.ErrHouseAlreadySold,
		},
		{
			name:    "house does not exist",
			payment: validPayment(),
			setupMock: func(m *MockHouseRepository) {
				m.On("MarkPurchased", mock.Anything, houseID, buyerID).Return(int64(0), nil)
				m.On("FindByID", mock.Anything, houseID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrHouseNotFound,
		},
		{
			name: "invalid payment never touches the store",
			payment: PaymentDetails{
				HolderName: "Jane Buyer",
				CardNumber: "1234",
				CVV:        "123",
				Month:      12,
				Year:       time.Now().Year() + 1,
			},
			setupMock:     func(m *MockHouseRepository) {},
			expectedError: apperrors.ErrInvalidPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockHouseRepository)
			tt.setupMock(mockRepo)

			svc := newHouseService(mockRepo)
			err := svc.Purchase(context.Background(), houseID, buyerID, tt.payment)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestHouseService_PurchaseRace(t *testing.T) {
	// Two buyers race for the same house. The repository's conditional update
	// admits exactly one winner; the loser must observe ErrHouseAlreadySold.
	houseID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	mockRepo := new(MockHouseRepository)
	mockRepo.On("MarkPurchased", mock.Anything, houseID, first).Return(int64(1), nil).Once()
	mockRepo.On("MarkPurchased", mock.Anything, houseID, second).Return(int64(0), nil).Once()
	mockRepo.On("FindByID", mock.Anything, houseID).Return(&model.House{ID: houseID, Rented: true, UserID: &first}, nil)

	svc := newHouseService(mockRepo)

	assert.NoError(t, svc.Purchase(context.Background(), houseID, first, validPayment()))
	assert.ErrorIs(t, svc.Purchase(context.Background(), houseID, second, validPayment()), apperrors.ErrHouseAlreadySold)
	mockRepo.AssertExpectations(t)
}

func TestHouseService_Detail(t *testing.T) {
	houseID := uuid.New()

	t.Run("available house is returned", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindAvailableByID", mock.Anything, houseID).Return(&model.House{ID: houseID}, nil)

		svc := newHouseService(mockRepo)
		house, err := svc.Detail(context.Background(), houseID)
		assert.NoError(t, err)
		assert.Equal(t, houseID, house.ID)
	})

	t.Run("rented house reads as not found", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindAvailableByID", mock.Anything, houseID).Return(nil, gorm.ErrRecordNotFound)

		svc := newHouseService(mockRepo)
		_, err := svc.Detail(context.Background(), houseID)
		assert.ErrorIs(t, err, apperrors.ErrHouseNotFound)
	})
}

func TestHouseService_Reset(t *testing.T) {
	houseID := uuid.New()
	owner := uuid.New()

	t.Run("reset clears owner and rented state", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindByID", mock.Anything, houseID).Return(&model.House{ID: houseID, Rented: true, UserID: &owner}, nil)
		mockRepo.On("Reset", mock.Anything, houseID).Return(nil)

		svc := newHouseService(mockRepo)
		assert.NoError(t, svc.Reset(context.Background(), houseID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("reset of missing house fails", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindByID", mock.Anything, houseID).Return(nil, gorm.ErrRecordNotFound)

		svc := newHouseService(mockRepo)
		assert.ErrorIs(t, svc.Reset(context.Background(), houseID), apperrors.ErrHouseNotFound)
	})
}

func TestHouseService_Delete(t *testing.T) {
	houseID := uuid.New()

	t.Run("delete removes the record", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindByID", mock.Anything, houseID).Return(&model.House{ID: houseID}, nil)
		mockRepo.On("Delete", mock.Anything, houseID).Return(nil)

		svc := newHouseService(mockRepo)
		assert.NoError(t, svc.Delete(context.Background(), houseID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("delete of missing house fails", func(t *testing.T) {
		mockRepo := new(MockHouseRepository)
		mockRepo.On("FindByID", mock.Anything, houseID).Return(nil, gorm.ErrRecordNotFound)

		svc := newHouseService(mockRepo)
		assert.ErrorIs(t, svc.Delete(context.Background(), houseID), apperrors.ErrHouseNotFound)
	})
}

func TestHouseService_Browse(t *testing.T) {
	mockRepo := new(MockHouseRepository)
	mockRepo.On("ListByCategory", mock.Anything, model.CategoryCastle, false).
		Return([]model.House{{Category: model.CategoryCastle}}, nil)

	svc := newHouseService(mockRepo)
	houses, err := svc.Browse(context.Background(), model.CategoryCastle)
	assert.NoError(t, err)
	assert.Len(t, houses, 1)
	mockRepo.AssertExpectations(t)
}
