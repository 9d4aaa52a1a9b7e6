package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCartRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("GetOrCreateCart", func(t *testing.T) {
		t.Run("Success - concurrent create converges on one row", func(t *testing.T) {
			// Arrange
			mock.ExpectExec(`ON CONFLICT \(user_id\) DO NOTHING`).
				WithArgs(int64(9)).
				WillReturnResult(sqlmock.NewResult(0, 0)) // lost the race, row exists
			mock.ExpectQuery(`SELECT id, user_id, created_at\s+FROM carts`).
				WithArgs(int64(9)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(3, 9, now))

			// Act
			cart, err := repo.GetOrCreateCart(ctx, 9)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(3), cart.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetCartByUserID", func(t *testing.T) {
		t.Run("Success - items carry product, size and color names", func(t *testing.T) {
			mock.ExpectQuery(`SELECT id, user_id, created_at\s+FROM carts`).
				WithArgs(int64(9)).
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(3, 9, now))

			itemRows := sqlmock.NewRows([]string{"id", "cart_id", "variant_id", "quantity", "p.id", "p.name", "p.price", "s.name", "c.name"}).
				AddRow(1, 3, 42, 2, 7, "Tour Tee", 25.00, "M", "Black").
				AddRow(2, 3, 42, 1, 7, "Tour Tee", 25.00, "M", "Black")

			mock.ExpectQuery(`FROM cart_items ci\s+JOIN product_options po`).
				WithArgs(int64(3)).
				WillReturnRows(itemRows)

			cart, err := repo.GetCartByUserID(ctx, 9)

			require.NoError(t, err)
			require.Len(t, cart.Items, 2)
			// duplicate adds stay separate lines
			assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
			assert.Equal(t, cart.Items[0].VariantID, cart.Items[1].VariantID)
			assert.Equal(t, 75.00, cart.Subtotal())
		})

		t.Run("Error - no cart", func(t *testing.T) {
			mock.ExpectQuery(`SELECT id, user_id, created_at\s+FROM carts`).
				WithArgs(int64(9)).
				WillReturnError(sql.ErrNoRows)

			cart, err := repo.GetCartByUserID(ctx, 9)

			assert.Nil(t, cart)
			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})

	t.Run("AddItem", func(t *testing.T) {
		t.Run("Success - always a fresh line", func(t *testing.T) {
			mock.ExpectQuery(`INSERT INTO cart_items`).
				WithArgs(int64(3), int64(42), int64(2)).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

			item, err := repo.AddItem(ctx, 3, 42, 2)

			require.NoError(t, err)
			assert.Equal(t, int64(11), item.ID)
			assert.Equal(t, int64(2), item.Quantity)
		})
	})

	t.Run("UpdateItemQuantity", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			mock.ExpectExec(`UPDATE cart_items\s+SET quantity`).
				WithArgs(int64(5), int64(11)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.UpdateItemQuantity(ctx, 11, 5))
		})

		t.Run("Error - vanished line", func(t *testing.T) {
			mock.ExpectExec(`UPDATE cart_items\s+SET quantity`).
				WithArgs(int64(5), int64(11)).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, 11, 5), sql.ErrNoRows)
		})
	})

	t.Run("RemoveItem", func(t *testing.T) {
		t.Run("Error - already removed", func(t *testing.T) {
			mock.ExpectExec(`DELETE FROM cart_items`).
				WithArgs(int64(11)).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, repo.RemoveItem(ctx, 11), sql.ErrNoRows)
		})
	})

	t.Run("SubtotalByUser", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			mock.ExpectQuery(`SELECT COALESCE\(SUM\(ci.quantity \* p.price\), 0\)`).
				WithArgs(int64(9)).
				WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(250.00))

			subtotal, err := repo.SubtotalByUser(ctx, 9)

			require.NoError(t, err)
			assert.Equal(t, 250.00, subtotal)
		})

		t.Run("Success - empty cart sums to zero", func(t *testing.T) {
			mock.ExpectQuery(`SELECT COALESCE\(SUM\(ci.quantity \* p.price\), 0\)`).
				WithArgs(int64(13)).
				WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.00))

			subtotal, err := repo.SubtotalByUser(ctx, 13)

			require.NoError(t, err)
			assert.Zero(t, subtotal)
		})
	})
}
