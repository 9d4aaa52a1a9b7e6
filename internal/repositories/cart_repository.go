package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltsmerch/storefront/internal/models"
	"github.com/ltsmerch/storefront/internal/utils"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, variantID, quantity int64) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartItemID, quantity int64) error
	RemoveItem(ctx context.Context, cartItemID int64) error
	SubtotalByUser(ctx context.Context, userID int64) (float64, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetOrCreateCart relies on the unique index on carts.user_id: the insert is a
// no-op when a cart already exists, so two concurrent first adds for the same
// user converge on one row instead of racing to create two carts.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	insertQuery := `
		INSERT INTO carts (user_id, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.DB.ExecContext(dbCtx, insertQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	query := `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	if err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.variant_id, ci.quantity,
		       p.id, p.name, p.price, s.name, c.name
		FROM cart_items ci
		JOIN product_options po ON po.id = ci.variant_id
		JOIN products p ON p.id = po.product_id
		JOIN sizes s ON s.id = po.size_id
		JOIN colors c ON c.id = po.color_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ID, &item.CartID, &item.VariantID, &item.Quantity,
			&item.ProductID, &item.ProductName, &item.UnitPrice, &item.SizeName, &item.ColorName); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	cart.Items = items

	return cart, nil
}

// AddItem always appends a new line. Two adds of the same variant yield two
// rows, each independently editable and removable.
func (r *cartRepository) AddItem(ctx context.Context, cartID, variantID, quantity int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	item := &models.CartItem{
		CartID:    cartID,
		VariantID: variantID,
		Quantity:  quantity,
	}

	if err := r.DB.QueryRowContext(dbCtx, query, cartID, variantID, quantity).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartItemID, quantity int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, cartItemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartItemID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_items
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(dbCtx, query, cartItemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// SubtotalByUser sums quantity × product price over the user's cart lines.
// Price is read from the product; a variant never overrides it.
func (r *cartRepository) SubtotalByUser(ctx context.Context, userID int64) (float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(ci.quantity * p.price), 0)
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN product_options po ON po.id = ci.variant_id
		JOIN products p ON p.id = po.product_id
		WHERE c.user_id = $1
	`

	var subtotal float64

	if err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&subtotal); err != nil {
		return 0, fmt.Errorf("failed to compute cart subtotal: %w", err)
	}

	return subtotal, nil
}
