package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ltsmerch/storefront/internal/models"
	"github.com/ltsmerch/storefront/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, variant *models.Variant) error
	FindVariant(ctx context.Context, sizeID, colorID int64) (*models.Variant, error)
	ListVariants(ctx context.Context, productID int64) ([]models.Variant, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.ImageURL).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// GetProductByID returns the product with its stock derived from the variants.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.name, p.description, p.price, p.image_url, COALESCE(SUM(po.stock), 0), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN product_options po ON po.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	product := &models.Product{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description,
		&product.Price, &product.ImageURL, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`
	if err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT p.id, p.name, p.description, p.price, p.image_url, COALESCE(SUM(po.stock), 0), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN product_options po ON po.product_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.ImageURL, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// UpdateProduct applies the edit only when the caller's updated_at matches the
// stored row. A stale revision returns ErrConflict; a missing row sql.ErrNoRows.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5 AND updated_at = $6
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price,
		product.ImageURL, product.ID, product.UpdatedAt).Scan(&product.UpdatedAt)
	if err == nil {
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to update product: %w", err)
	}

	var exists bool

	existsQuery := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`
	if scanErr := r.DB.QueryRowContext(dbCtx, existsQuery, product.ID).Scan(&exists); scanErr != nil {
		return fmt.Errorf("failed to check product existence: %w", scanErr)
	}

	if exists {
		return ErrConflict
	}

	return sql.ErrNoRows
}

// DeleteProduct removes the product and its variants in one transaction.
// A variant referenced by a cart item or an order item blocks the whole
// delete; nothing is removed.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM product_options WHERE product_id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}

		return fmt.Errorf("failed to delete product variants: %w", err)
	}

	result, err := tx.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *productRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_options (product_id, category_id, color_id, size_id, stock, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.DB.QueryRowContext(dbCtx, query, variant.ProductID, variant.CategoryID, variant.ColorID,
		variant.SizeID, variant.Stock, variant.Active).Scan(&variant.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to insert variant: %w", err)
	}

	return nil
}

// FindVariant looks a variant up by size and color only, matching the
// storefront's add-to-cart form which never posts a product id.
func (r *productRepository) FindVariant(ctx context.Context, sizeID, colorID int64) (*models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT po.id, po.product_id, po.category_id, po.color_id, po.size_id, po.stock, po.active
		FROM product_options po
		WHERE po.size_id = $1 AND po.color_id = $2
		ORDER BY po.id
		LIMIT 1
	`

	variant := &models.Variant{}

	err := r.DB.QueryRowContext(dbCtx, query, sizeID, colorID).Scan(&variant.ID, &variant.ProductID,
		&variant.CategoryID, &variant.ColorID, &variant.SizeID, &variant.Stock, &variant.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	return variant, nil
}

func (r *productRepository) ListVariants(ctx context.Context, productID int64) ([]models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT po.id, po.product_id, po.category_id, po.color_id, po.size_id, po.stock, po.active,
		       c.name, s.name
		FROM product_options po
		JOIN colors c ON c.id = po.color_id
		JOIN sizes s ON s.id = po.size_id
		WHERE po.product_id = $1
		ORDER BY po.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}

	defer rows.Close()

	var variants []models.Variant

	for rows.Next() {
		var variant models.Variant

		if err := rows.Scan(&variant.ID, &variant.ProductID, &variant.CategoryID, &variant.ColorID,
			&variant.SizeID, &variant.Stock, &variant.Active, &variant.ColorName, &variant.SizeName); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}

		variants = append(variants, variant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return variants, nil
}
