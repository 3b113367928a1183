package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/storefront-dev/storefront-platform/internal/cache"
	"github.com/storefront-dev/storefront-platform/internal/config"
	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	repository "github.com/storefront-dev/storefront-platform/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	cacheCfg  *config.CacheConfig
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, cacheStore cache.Cache, cacheCfg *config.CacheConfig) ProductService {
	return &productService{
		repo:     repo,
		cache:    cacheStore,
		cacheCfg: cacheCfg,
		// descriptions come from the admin CMS rich-text editor
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, errors.AddValidationError("price", "must not be negative")
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   s.sanitizer.Sanitize(req.Description),
		Brand:         req.Brand,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Images:        images,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}

	err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	cached := &models.Product{}

	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		slog.Warn("Product cache lookup failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, product, s.cacheCfg.ProductTTL); err != nil {
		slog.Warn("Failed to cache product", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Brand != nil {
		product.Brand = *req.Brand
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.AddValidationError("price", "must not be negative")
		}

		product.Price = *req.Price
	}

	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}

	if req.Images != nil {
		product.Images = *req.Images
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	err = s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	// stale price or stock in the cache is worse than a miss
	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		slog.Warn("Failed to invalidate product cache", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.PageSize < 1 || filter.PageSize > 50 {
		filter.PageSize = 20
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}
