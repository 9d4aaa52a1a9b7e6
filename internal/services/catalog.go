package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ltsmerch/storefront/internal/cache"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/ltsmerch/storefront/internal/storage"
	"github.com/microcosm-cc/bluemonday"
)

const productCacheTTL = 10 * time.Minute

// CatalogService is the product/variant store: products, their purchasable
// (category, color, size) combinations, and the add-to-cart variant lookup.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.FileUpload) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, productID int64, req *models.CreateVariantRequest) (*models.Variant, error)
	FindVariant(ctx context.Context, sizeID, colorID int64) (*models.Variant, error)
	ListVariants(ctx context.Context, productID int64) ([]models.Variant, error)
}

type catalogService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	files     storage.FileStore
	sanitizer *bluemonday.Policy
}

func NewCatalogService(repo repository.ProductRepository, productCache cache.Cache, files storage.FileStore) CatalogService {
	return &catalogService{
		repo:      repo,
		cache:     productCache,
		files:     files,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, image *models.FileUpload) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
	}

	if image != nil && image.Size > 0 {
		path, err := s.files.Save(ctx, storage.ObjectName(image.FileName), image.ContentType, image.Size, image.Content)
		if err != nil {
			return nil, errors.StorageError("Failed to store product image").WithError(err)
		}

		product.ImageURL = path
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	key := productCacheKey(id)

	if s.cache != nil {
		cached := &models.Product{}

		hit, err := s.cache.Get(ctx, key, cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, product, productCacheTTL); err != nil {
			slog.Warn("Product cache write failed", slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	// The caller's revision, not the freshly loaded one, guards the update.
	product.UpdatedAt = req.UpdatedAt

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		switch {
		case stdErrors.Is(err, repository.ErrConflict):
			return nil, errors.ConcurrencyConflictError("Product was modified by another request").WithError(err)
		case stdErrors.Is(err, sql.ErrNoRows):
			return nil, errors.NotFoundError("Product not found").WithError(err)
		default:
			return nil, errors.DatabaseError("Failed to update product").WithError(err)
		}
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		switch {
		case stdErrors.Is(err, repository.ErrInUse):
			return errors.ResourceInUseError("Product has variants referenced by carts or orders").WithError(err)
		case stdErrors.Is(err, sql.ErrNoRows):
			return errors.NotFoundError("Product not found").WithError(err)
		default:
			return errors.DatabaseError("Failed to delete product").WithError(err)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *catalogService) CreateVariant(ctx context.Context, productID int64, req *models.CreateVariantRequest) (*models.Variant, error) {
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	variant := &models.Variant{
		ProductID:  productID,
		CategoryID: req.CategoryID,
		ColorID:    req.ColorID,
		SizeID:     req.SizeID,
		Stock:      req.Stock,
		Active:     req.Active,
	}

	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateCombinationError("This category, color and size combination already exists for the product").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create variant").WithError(err)
	}

	s.invalidate(ctx, productID)

	return variant, nil
}

func (s *catalogService) FindVariant(ctx context.Context, sizeID, colorID int64) (*models.Variant, error) {
	variant, err := s.repo.FindVariant(ctx, sizeID, colorID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("This size and color combination is not available").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to look up variant").WithError(err)
	}

	return variant, nil
}

func (s *catalogService) ListVariants(ctx context.Context, productID int64) ([]models.Variant, error) {
	variants, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch variants").WithError(err)
	}

	return variants, nil
}

func (s *catalogService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("error", err.Error()))
	}
}
