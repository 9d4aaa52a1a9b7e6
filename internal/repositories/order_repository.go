package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltsmerch/storefront/internal/models"
	"github.com/ltsmerch/storefront/internal/utils"
)

type OrderRepository interface {
	CreateOrderFromCart(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64, page, size int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	FindPendingOrderByUser(ctx context.Context, userID int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id int64) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrderFromCart persists the order and, in the same transaction, copies
// the user's cart lines into order_items and empties the cart. A placed order
// consumes the cart.
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	insertOrder := `
		INSERT INTO orders (user_id, total, shipping_address, shipping_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, insertOrder, order.UserID, order.Total, order.ShippingAddress,
		order.ShippingMethod, order.Status).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	copyItems := `
		INSERT INTO order_items (order_id, variant_id, quantity, unit_price)
		SELECT $1, ci.variant_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN product_options po ON po.id = ci.variant_id
		JOIN products p ON p.id = po.product_id
		WHERE c.user_id = $2
	`

	if _, err := tx.ExecContext(dbCtx, copyItems, order.ID, order.UserID); err != nil {
		return fmt.Errorf("failed to copy cart items: %w", err)
	}

	clearCart := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1
	`

	if _, err := tx.ExecContext(dbCtx, clearCart, order.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, total, shipping_address, shipping_method, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.UserID, &order.Total,
		&order.ShippingAddress, &order.ShippingMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, variant_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64, page, size int) ([]models.Order, int, error) {
	return r.listOrders(ctx, &userID, page, size)
}

func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	return r.listOrders(ctx, nil, page, size)
}

func (r *orderRepository) listOrders(ctx context.Context, userID *int64, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		total int
		err   error
	)

	if userID != nil {
		err = r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, *userID).Scan(&total)
	} else {
		err = r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	var rows *sql.Rows

	if userID != nil {
		query := `
			SELECT id, user_id, total, shipping_address, shipping_method, status, created_at, updated_at
			FROM orders
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		rows, err = r.DB.QueryContext(dbCtx, query, *userID, size, offset)
	} else {
		query := `
			SELECT id, user_id, total, shipping_address, shipping_method, status, created_at, updated_at
			FROM orders
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`
		rows, err = r.DB.QueryContext(dbCtx, query, size, offset)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.ShippingAddress,
			&order.ShippingMethod, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindPendingOrderByUser returns the most recent order still in the created
// state, the one a voucher upload attaches to.
func (r *orderRepository) FindPendingOrderByUser(ctx context.Context, userID int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, total, shipping_address, shipping_method, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, userID, models.OrderStatusCreated).Scan(&order.ID,
		&order.UserID, &order.Total, &order.ShippingAddress, &order.ShippingMethod, &order.Status,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to find pending order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
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

// DeleteOrder is idempotent: deleting a missing order is a no-op.
func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit()
}
