package models

import "time"

// CartItem is a quantity of one variant held in a cart. Adding the same
// variant twice yields two independent lines; lines are never merged.
type CartItem struct {
	ID          int64   `json:"id"`
	CartID      int64   `json:"cart_id"`
	VariantID   int64   `json:"variant_id"`
	Quantity    int64   `json:"quantity"`
	ProductID   int64   `json:"product_id,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	SizeName    string  `json:"size_name,omitempty"`
	ColorName   string  `json:"color_name,omitempty"`
}

type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// Subtotal sums quantity × unit price over the cart lines.
func (c *Cart) Subtotal() float64 {
	var total float64

	for _, item := range c.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}

	return total
}

type AddItemRequest struct {
	SizeID   int64 `json:"size_id" validate:"required"`
	ColorID  int64 `json:"color_id" validate:"required"`
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	CartItemID int64 `json:"cart_item_id" validate:"required"`
	Quantity   int64 `json:"quantity" validate:"required,min=1"`
}
