package models

import (
	"io"
	"time"
)

type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Size struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Product is the catalog entry. Stock is derived from the variants
// (SUM of variant stock) and never stored on the product row itself.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant is a purchasable (category, color, size) combination of a product.
// The tuple is unique within one product.
type Variant struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	CategoryID int64  `json:"category_id"`
	ColorID    int64  `json:"color_id"`
	SizeID     int64  `json:"size_id"`
	Stock      int64  `json:"stock"`
	Active     bool   `json:"active"`
	ColorName  string `json:"color_name,omitempty"`
	SizeName   string `json:"size_name,omitempty"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	// UpdatedAt carries the revision the caller last read; a stale value
	// fails the update with a concurrency conflict.
	UpdatedAt time.Time `json:"updated_at" validate:"required"`
}

type CreateVariantRequest struct {
	CategoryID int64 `json:"category_id" validate:"required"`
	ColorID    int64 `json:"color_id" validate:"required"`
	SizeID     int64 `json:"size_id" validate:"required"`
	Stock      int64 `json:"stock" validate:"gte=0"`
	Active     bool  `json:"active"`
}

// FileUpload is a transport-agnostic handle on an uploaded file
// (product image or payment voucher).
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}
