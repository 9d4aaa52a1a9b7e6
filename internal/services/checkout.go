package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"strings"

	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
)

// CheckoutService turns a cart into an order. BeginCheckout previews totals
// without persisting anything; SubmitShipping freezes the total and consumes
// the cart. Order reads and admin status changes live here too.
type CheckoutService interface {
	BeginCheckout(ctx context.Context, userID int64, shippingMethod int) (*models.CheckoutPreview, error)
	SubmitShipping(ctx context.Context, userID int64, req *models.SubmitShippingRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID int64, orderID int64, isAdmin bool) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64, page, size int) (*models.OrderListResponse, error)
	ListAllOrders(ctx context.Context, page, size int) (*models.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID int64) error
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	cart      CartService
	pricing   PricingService
}

func NewCheckoutService(orderRepo repository.OrderRepository, cart CartService, pricing PricingService) CheckoutService {
	return &checkoutService{orderRepo: orderRepo, cart: cart, pricing: pricing}
}

func (s *checkoutService) BeginCheckout(ctx context.Context, userID int64, shippingMethod int) (*models.CheckoutPreview, error) {
	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	preview := &models.CheckoutPreview{
		Order: &models.Order{
			UserID:         userID,
			Total:          cart.Subtotal() + s.pricing.ShippingFee(shippingMethod),
			ShippingMethod: shippingMethod,
			Status:         models.OrderStatusCreated,
		},
		Cart: cart,
	}

	return preview, nil
}

func (s *checkoutService) SubmitShipping(ctx context.Context, userID int64, req *models.SubmitShippingRequest) (*models.Order, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, errors.InvalidAddressError("Shipping address is required")
	}

	// An empty cart is not rejected: the order is placed with a zero
	// subtotal and only the shipping fee on it.
	total, err := s.pricing.ComputeTotal(ctx, userID, req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          userID,
		Total:           total,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		ShippingMethod:  req.ShippingMethod,
		Status:          models.OrderStatusCreated,
	}

	if err := s.orderRepo.CreateOrderFromCart(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to place order").WithError(err)
	}

	return order, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, userID int64, orderID int64, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// Non-admins only see their own orders; a foreign id looks absent, not
	// forbidden, so order ids are not enumerable.
	if !isAdmin && order.UserID != userID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *checkoutService) ListOrdersByUser(ctx context.Context, userID int64, page, size int) (*models.OrderListResponse, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.OrderListResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *checkoutService) ListAllOrders(ctx context.Context, page, size int) (*models.OrderListResponse, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.OrderListResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *checkoutService) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Order not found").WithError(err)
		}

		return errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return nil
}

func (s *checkoutService) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return errors.DatabaseError("Failed to delete order").WithError(err)
	}

	return nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	return page, size
}
