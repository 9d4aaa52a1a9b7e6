// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/ltsmerch/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.FileUpload) (*models.Product, error) {
	args := m.Called(ctx, req, image)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *CatalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CatalogService) CreateVariant(ctx context.Context, productID int64, req *models.CreateVariantRequest) (*models.Variant, error) {
	args := m.Called(ctx, productID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *CatalogService) FindVariant(ctx context.Context, sizeID, colorID int64) (*models.Variant, error) {
	args := m.Called(ctx, sizeID, colorID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *CatalogService) ListVariants(ctx context.Context, productID int64) ([]models.Variant, error) {
	args := m.Called(ctx, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Variant), args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItem, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID int64, req *models.UpdateQuantityRequest) error {
	args := m.Called(ctx, userID, req)

	return args.Error(0)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	args := m.Called(ctx, userID, cartItemID)

	return args.Error(0)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) BeginCheckout(ctx context.Context, userID int64, shippingMethod int) (*models.CheckoutPreview, error) {
	args := m.Called(ctx, userID, shippingMethod)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutPreview), args.Error(1)
}

func (m *CheckoutService) SubmitShipping(ctx context.Context, userID int64, req *models.SubmitShippingRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *CheckoutService) GetOrder(ctx context.Context, userID int64, orderID int64, isAdmin bool) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID, isAdmin)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *CheckoutService) ListOrdersByUser(ctx context.Context, userID int64, page, size int) (*models.OrderListResponse, error) {
	args := m.Called(ctx, userID, page, size)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderListResponse), args.Error(1)
}

func (m *CheckoutService) ListAllOrders(ctx context.Context, page, size int) (*models.OrderListResponse, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderListResponse), args.Error(1)
}

func (m *CheckoutService) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, status)

	return args.Error(0)
}

func (m *CheckoutService) DeleteOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)

	return args.Error(0)
}

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) SubmitPayment(ctx context.Context, userID int64, voucher *models.FileUpload) (*models.Payment, error) {
	args := m.Called(ctx, userID, voucher)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentService) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	args := m.Called(ctx, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *PaymentService) ReviewPayment(ctx context.Context, paymentID int64, approve bool) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, approve)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Payment), args.Error(1)
}
