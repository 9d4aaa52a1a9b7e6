package models

import "time"

type OrderStatus string

const (
	// OrderStatusCreated is the initial, unpaid state an order is born in.
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	VariantID int64   `json:"variant_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order freezes the cart contents and the computed total at checkout time.
// Later cart edits never change an existing order.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Total           float64     `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	ShippingMethod  int         `json:"shipping_method"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// CheckoutPreview is the read-only first step of checkout: a draft order
// alongside the current cart. Nothing is persisted.
type CheckoutPreview struct {
	Order *Order `json:"order"`
	Cart  *Cart  `json:"cart"`
}

type SubmitShippingRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingMethod  int    `json:"shipping_method"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=created paid shipped cancelled"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}
