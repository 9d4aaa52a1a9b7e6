package service

import (
	"context"

	"github.com/ltsmerch/storefront/internal/errors"
	repository "github.com/ltsmerch/storefront/internal/repositories"
)

// Flat shipping fees keyed by method. Unknown methods ship free rather than
// failing, matching the storefront's historical behavior.
var shippingFees = map[int]float64{
	1: 50.00,
	2: 70.00,
	3: 100.00,
}

// PricingService computes shipping fees and order totals. Totals are derived
// from the persisted cart, never from client-supplied amounts.
type PricingService interface {
	ShippingFee(method int) float64
	ComputeTotal(ctx context.Context, userID int64, shippingMethod int) (float64, error)
}

type pricingService struct {
	cartRepo repository.CartRepository
}

func NewPricingService(cartRepo repository.CartRepository) PricingService {
	return &pricingService{cartRepo: cartRepo}
}

func (s *pricingService) ShippingFee(method int) float64 {
	return shippingFees[method]
}

func (s *pricingService) ComputeTotal(ctx context.Context, userID int64, shippingMethod int) (float64, error) {
	subtotal, err := s.cartRepo.SubtotalByUser(ctx, userID)
	if err != nil {
		return 0, errors.DatabaseError("Failed to compute cart subtotal").WithError(err)
	}

	return subtotal + s.ShippingFee(shippingMethod), nil
}
