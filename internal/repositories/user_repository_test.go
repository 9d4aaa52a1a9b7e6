package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUserRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			user := &models.User{Name: "Ada", Email: "fan@example.com", PasswordHash: "hashed"}

			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs(user.Name, user.Email, user.PasswordHash, user.IsAdmin).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, now))

			require.NoError(t, repo.CreateUser(ctx, user))
			assert.Equal(t, int64(9), user.ID)
		})

		t.Run("Error - duplicate email maps to ErrDuplicate", func(t *testing.T) {
			mock.ExpectQuery(`INSERT INTO users`).
				WillReturnError(&pq.Error{Code: "23505"})

			err := repo.CreateUser(ctx, &models.User{Email: "fan@example.com"})

			assert.ErrorIs(t, err, repository.ErrDuplicate)
		})
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		t.Run("Error - unknown email", func(t *testing.T) {
			mock.ExpectQuery(`FROM users\s+WHERE email`).
				WithArgs("ghost@example.com").
				WillReturnError(sql.ErrNoRows)

			user, err := repo.GetUserByEmail(ctx, "ghost@example.com")

			assert.Nil(t, user)
			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})
}

func TestPaymentRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPaymentRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreatePayment", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			payment := &models.Payment{
				OrderID:     4,
				UserID:      9,
				Amount:      320.00,
				Method:      models.PaymentMethodVoucher,
				VoucherPath: "vouchers/abc_receipt.png",
				Status:      models.PaymentStatusAwaitingReview,
			}

			mock.ExpectQuery(`INSERT INTO payments`).
				WithArgs(payment.OrderID, payment.UserID, payment.Amount, payment.Method,
					payment.VoucherPath, payment.Status).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, now))

			require.NoError(t, repo.CreatePayment(ctx, payment))
			assert.Equal(t, int64(2), payment.ID)
		})
	})

	t.Run("UpdatePaymentStatus", func(t *testing.T) {
		t.Run("Error - missing payment", func(t *testing.T) {
			mock.ExpectExec(`UPDATE payments\s+SET status`).
				WithArgs(models.PaymentStatusApproved, int64(404)).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, repo.UpdatePaymentStatus(ctx, 404, models.PaymentStatusApproved), sql.ErrNoRows)
		})
	})

	t.Run("ListPaymentsByOrder", func(t *testing.T) {
		t.Run("Success - newest first", func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"id", "order_id", "user_id", "amount", "method", "voucher_path", "status", "created_at"}).
				AddRow(3, 4, 9, 320.00, models.PaymentMethodVoucher, "vouchers/b.png", models.PaymentStatusAwaitingReview, now).
				AddRow(2, 4, 9, 320.00, models.PaymentMethodVoucher, "vouchers/a.png", models.PaymentStatusRejected, now.Add(-time.Hour))

			mock.ExpectQuery(`FROM payments\s+WHERE order_id`).
				WithArgs(int64(4)).
				WillReturnRows(rows)

			payments, err := repo.ListPaymentsByOrder(ctx, 4)

			require.NoError(t, err)
			require.Len(t, payments, 2)
			assert.Equal(t, models.PaymentStatusAwaitingReview, payments[0].Status)
		})
	})
}
