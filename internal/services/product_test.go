package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-dev/storefront-platform/internal/cache"
	appErrors "github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	service "github.com/storefront-dev/storefront-platform/internal/services"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sanitizes Description", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		productService := service.NewProductService(mockRepo, noCache{}, testCacheConfig())

		req := &models.CreateProductRequest{
			Name:        "Wireless Mouse",
			Description: `Great mouse<script>alert("xss")</script> for <b>everyone</b>`,
			Brand:       "Logi",
			Price:       decimal.NewFromFloat(15.00),
			Images:      nil,
		}

		mockRepo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Description == "Great mouse for <b>everyone</b>" && p.IsActive
		})).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotContains(t, product.Description, "<script>")
		assert.NotNil(t, product.Images, "nil images must be stored as an empty list")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		productService := service.NewProductService(mockRepo, noCache{}, testCacheConfig())

		req := &models.CreateProductRequest{
			Name:  "Wireless Mouse",
			Price: decimal.NewFromFloat(-1.00),
		}

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Cache Miss Falls Through To Repository", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		mockCache := new(MockCache)
		productService := service.NewProductService(mockRepo, mockCache, testCacheConfig())

		stored := activeProduct(productID, "15.00", 10)

		mockCache.On("Get", mock.Anything, cache.Key(cache.ProductKeyPrefix, productID.String()), mock.Anything).Return(false, nil).Once()
		mockRepo.On("GetProductByID", mock.Anything, productID).Return(stored, nil).Once()
		mockCache.On("Set", mock.Anything, cache.Key(cache.ProductKeyPrefix, productID.String()), stored, testCacheConfig().ProductTTL).Return(nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		mockCache.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		productService := service.NewProductService(mockRepo, noCache{}, testCacheConfig())

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Invalidates Cache", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		mockCache := new(MockCache)
		productService := service.NewProductService(mockRepo, mockCache, testCacheConfig())

		stored := activeProduct(productID, "15.00", 10)
		newPrice := decimal.NewFromFloat(12.50)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(stored, nil).Once()
		mockRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Price.Equal(newPrice)
		})).Return(nil).Once()
		mockCache.On("Delete", mock.Anything, cache.Key(cache.ProductKeyPrefix, productID.String())).Return(nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Price: &newPrice})

		// Assert
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(newPrice))
		mockCache.AssertExpectations(t)
	})

	t.Run("Failure - Negative Price Leaves Product Untouched", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		productService := service.NewProductService(mockRepo, noCache{}, testCacheConfig())

		stored := activeProduct(productID, "15.00", 10)
		badPrice := decimal.NewFromFloat(-5.00)

		mockRepo.On("GetProductByID", mock.Anything, productID).Return(stored, nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Price: &badPrice})

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Clamps Out Of Range Paging", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		productService := service.NewProductService(mockRepo, noCache{}, testCacheConfig())

		mockRepo.On("ListProducts", mock.Anything, mock.MatchedBy(func(f *models.ProductFilter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]*models.Product{}, 0, nil).Once()

		// Act
		_, _, err := productService.ListProducts(ctx, &models.ProductFilter{Page: 0, PageSize: 999})

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
