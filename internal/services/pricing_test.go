package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/repositories/mocks"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestShippingFee(t *testing.T) {
	pricing := service.NewPricingService(nil)

	tests := []struct {
		name   string
		method int
		want   float64
	}{
		{"Standard", 1, 50.00},
		{"Express", 2, 70.00},
		{"Overnight", 3, 100.00},
		{"Unknown method ships free", 0, 0.00},
		{"Out of range ships free", 4, 0.00},
		{"Negative ships free", -1, 0.00},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.ShippingFee(tc.method))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - subtotal plus fee", func(t *testing.T) {
		// Arrange
		mockRepo := &mocks.CartRepository{}
		pricing := service.NewPricingService(mockRepo)
		mockRepo.On("SubtotalByUser", ctx, int64(7)).Return(250.00, nil).Once()

		// Act
		total, err := pricing.ComputeTotal(ctx, 7, 2)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 320.00, total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - empty cart pays only the fee", func(t *testing.T) {
		mockRepo := &mocks.CartRepository{}
		pricing := service.NewPricingService(mockRepo)
		mockRepo.On("SubtotalByUser", ctx, int64(7)).Return(0.00, nil).Once()

		total, err := pricing.ComputeTotal(ctx, 7, 3)

		assert.NoError(t, err)
		assert.Equal(t, 100.00, total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - fee is independent of cart size", func(t *testing.T) {
		mockRepo := &mocks.CartRepository{}
		pricing := service.NewPricingService(mockRepo)
		mockRepo.On("SubtotalByUser", ctx, int64(7)).Return(9999.50, nil).Once()

		total, err := pricing.ComputeTotal(ctx, 7, 1)

		assert.NoError(t, err)
		assert.Equal(t, 10049.50, total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mockRepo := &mocks.CartRepository{}
		pricing := service.NewPricingService(mockRepo)
		dbErr := errors.New("connection reset")
		mockRepo.On("SubtotalByUser", ctx, int64(7)).Return(0.00, dbErr).Once()

		total, err := pricing.ComputeTotal(ctx, 7, 1)

		assert.Error(t, err)
		assert.Zero(t, total)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbErr)
		mockRepo.AssertExpectations(t)
	})
}
