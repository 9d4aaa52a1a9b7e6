package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, repository.NewProductRepo(db))
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			product := &models.Product{Name: "Tour Tee", Description: "Soft cotton tee", Price: 25.00}

			mock.ExpectQuery(`INSERT INTO products`).
				WithArgs(product.Name, product.Description, product.Price, product.ImageURL).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

			// Act
			err := repo.CreateProduct(ctx, product)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(7), product.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		t.Run("Success - stock derived from variants", func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "image_url", "coalesce", "created_at", "updated_at"}).
				AddRow(7, "Tour Tee", "Soft cotton tee", 25.00, "", 30, now, now)

			mock.ExpectQuery(`FROM products p\s+LEFT JOIN product_options po`).
				WithArgs(int64(7)).
				WillReturnRows(rows)

			product, err := repo.GetProductByID(ctx, 7)

			require.NoError(t, err)
			assert.Equal(t, int64(30), product.Stock)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - not found", func(t *testing.T) {
			mock.ExpectQuery(`FROM products p\s+LEFT JOIN product_options po`).
				WithArgs(int64(404)).
				WillReturnError(sql.ErrNoRows)

			product, err := repo.GetProductByID(ctx, 404)

			assert.Nil(t, product)
			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})

	t.Run("UpdateProduct", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			product := &models.Product{ID: 7, Name: "Tour Tee", Price: 30.00, UpdatedAt: now}
			later := now.Add(time.Minute)

			mock.ExpectQuery(`UPDATE products\s+SET name`).
				WithArgs(product.Name, product.Description, product.Price, product.ImageURL, product.ID, now).
				WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(later))

			err := repo.UpdateProduct(ctx, product)

			require.NoError(t, err)
			assert.Equal(t, later, product.UpdatedAt)
		})

		t.Run("Error - stale revision maps to ErrConflict", func(t *testing.T) {
			product := &models.Product{ID: 7, Name: "Tour Tee", UpdatedAt: now}

			mock.ExpectQuery(`UPDATE products\s+SET name`).
				WillReturnError(sql.ErrNoRows)
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(product.ID).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

			err := repo.UpdateProduct(ctx, product)

			assert.ErrorIs(t, err, repository.ErrConflict)
		})

		t.Run("Error - missing row maps to sql.ErrNoRows", func(t *testing.T) {
			product := &models.Product{ID: 404, UpdatedAt: now}

			mock.ExpectQuery(`UPDATE products\s+SET name`).
				WillReturnError(sql.ErrNoRows)
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(product.ID).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

			err := repo.UpdateProduct(ctx, product)

			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		t.Run("Success - variants removed with the product", func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM product_options WHERE product_id`).
				WithArgs(int64(7)).
				WillReturnResult(sqlmock.NewResult(0, 3))
			mock.ExpectExec(`DELETE FROM products WHERE id`).
				WithArgs(int64(7)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			require.NoError(t, repo.DeleteProduct(ctx, 7))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error - referenced variant blocks the delete", func(t *testing.T) {
			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM product_options WHERE product_id`).
				WithArgs(int64(7)).
				WillReturnError(&pq.Error{Code: "23503"})
			mock.ExpectRollback()

			err := repo.DeleteProduct(ctx, 7)

			assert.ErrorIs(t, err, repository.ErrInUse)
		})
	})

	t.Run("CreateVariant", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			variant := &models.Variant{ProductID: 7, CategoryID: 1, ColorID: 3, SizeID: 2, Stock: 10, Active: true}

			mock.ExpectQuery(`INSERT INTO product_options`).
				WithArgs(variant.ProductID, variant.CategoryID, variant.ColorID, variant.SizeID, variant.Stock, variant.Active).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

			require.NoError(t, repo.CreateVariant(ctx, variant))
			assert.Equal(t, int64(42), variant.ID)
		})

		t.Run("Error - duplicate combination maps to ErrDuplicate", func(t *testing.T) {
			variant := &models.Variant{ProductID: 7, CategoryID: 1, ColorID: 3, SizeID: 2}

			mock.ExpectQuery(`INSERT INTO product_options`).
				WillReturnError(&pq.Error{Code: "23505"})

			err := repo.CreateVariant(ctx, variant)

			assert.ErrorIs(t, err, repository.ErrDuplicate)
		})

		t.Run("Error - other failures pass through", func(t *testing.T) {
			dbErr := errors.New("disk full")

			mock.ExpectQuery(`INSERT INTO product_options`).
				WillReturnError(dbErr)

			err := repo.CreateVariant(ctx, &models.Variant{})

			assert.ErrorIs(t, err, dbErr)
			assert.NotErrorIs(t, err, repository.ErrDuplicate)
		})
	})

	t.Run("FindVariant", func(t *testing.T) {
		t.Run("Success - matched on size and color only", func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"id", "product_id", "category_id", "color_id", "size_id", "stock", "active"}).
				AddRow(42, 7, 1, 3, 2, 10, true)

			mock.ExpectQuery(`WHERE po.size_id = \$1 AND po.color_id = \$2`).
				WithArgs(int64(2), int64(3)).
				WillReturnRows(rows)

			variant, err := repo.FindVariant(ctx, 2, 3)

			require.NoError(t, err)
			assert.Equal(t, int64(42), variant.ID)
			assert.Equal(t, int64(7), variant.ProductID)
		})

		t.Run("Error - unavailable combination", func(t *testing.T) {
			mock.ExpectQuery(`WHERE po.size_id = \$1 AND po.color_id = \$2`).
				WithArgs(int64(99), int64(3)).
				WillReturnError(sql.ErrNoRows)

			variant, err := repo.FindVariant(ctx, 99, 3)

			assert.Nil(t, variant)
			assert.ErrorIs(t, err, sql.ErrNoRows)
		})
	})

	t.Run("ListVariants", func(t *testing.T) {
		t.Run("Success - joined color and size names", func(t *testing.T) {
			rows := sqlmock.NewRows([]string{"id", "product_id", "category_id", "color_id", "size_id", "stock", "active", "c.name", "s.name"}).
				AddRow(42, 7, 1, 3, 2, 10, true, "Black", "M").
				AddRow(43, 7, 1, 4, 2, 5, true, "White", "M")

			mock.ExpectQuery(`JOIN colors c ON c.id = po.color_id`).
				WithArgs(int64(7)).
				WillReturnRows(rows)

			variants, err := repo.ListVariants(ctx, 7)

			require.NoError(t, err)
			require.Len(t, variants, 2)
			assert.Equal(t, "Black", variants[0].ColorName)
			assert.Equal(t, "M", variants[1].SizeName)
		})
	})
}
