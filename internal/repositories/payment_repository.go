package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltsmerch/storefront/internal/models"
	"github.com/ltsmerch/storefront/internal/utils"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID int64) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (order_id, user_id, amount, method, voucher_path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, payment.OrderID, payment.UserID, payment.Amount,
		payment.Method, payment.VoucherPath, payment.Status).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, user_id, amount, method, voucher_path, status, created_at
		FROM payments
		WHERE id = $1
	`

	payment := &models.Payment{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&payment.ID, &payment.OrderID, &payment.UserID,
		&payment.Amount, &payment.Method, &payment.VoucherPath, &payment.Status, &payment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments
		SET status = $1
		WHERE id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
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

func (r *paymentRepository) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, user_id, amount, method, voucher_path, status, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	defer rows.Close()

	var payments []models.Payment

	for rows.Next() {
		var payment models.Payment

		if err := rows.Scan(&payment.ID, &payment.OrderID, &payment.UserID, &payment.Amount,
			&payment.Method, &payment.VoucherPath, &payment.Status, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
