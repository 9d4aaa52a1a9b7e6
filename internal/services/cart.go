package service

import (
	"context"
	"database/sql"
	stdErrors "errors"

	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
)

// CartService manages the per-user cart. Items are resolved from a size/color
// pair via the catalog; every add appends its own line.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID int64, req *models.UpdateQuantityRequest) error
	RemoveItem(ctx context.Context, userID, cartItemID int64) error
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  CatalogService
}

func NewCartService(cartRepo repository.CartRepository, catalog CatalogService) CartService {
	return &cartService{cartRepo: cartRepo, catalog: catalog}
}

// GetCart returns the stored cart, or an empty one when the user has never
// added anything. Viewing a cart does not create a row.
func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return &models.Cart{UserID: userID}, nil
		}

		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItem, error) {
	if req.Quantity < 1 {
		return nil, errors.AddValidationError("quantity", "must be at least 1")
	}

	variant, err := s.catalog.FindVariant(ctx, req.SizeID, req.ColorID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to prepare cart").WithError(err)
	}

	item, err := s.cartRepo.AddItem(ctx, cart.ID, variant.ID, req.Quantity)
	if err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return item, nil
}

// UpdateQuantity is idempotent: updating a line that no longer exists succeeds
// silently, so a stale cart page never surfaces an error on save.
func (s *cartService) UpdateQuantity(ctx context.Context, userID int64, req *models.UpdateQuantityRequest) error {
	if req.Quantity < 1 {
		return s.RemoveItem(ctx, userID, req.CartItemID)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, req.CartItemID, req.Quantity); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return errors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return nil
}

// RemoveItem is idempotent for the same reason.
func (s *cartService) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	if err := s.cartRepo.RemoveItem(ctx, cartItemID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}
