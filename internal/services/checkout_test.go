package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storefront-dev/storefront-platform/internal/models"
	service "github.com/storefront-dev/storefront-platform/internal/services"
)

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Blocked - No Cart", func(t *testing.T) {
		// Arrange
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		checkoutService := service.NewCheckoutService(mockCartRepo, mockProductRepo)

		mockCartRepo.On("GetCart", mock.Anything, userID, "USD").Return(nil, sql.ErrNoRows).Once()

		// Act
		decision, err := checkoutService.Evaluate(ctx, userID, usd)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.CheckoutBlocked, decision.Status)
		assert.Len(t, decision.Blocks, 1)
		assert.Equal(t, "Cart is empty", decision.Blocks[0].Reason)
	})

	t.Run("Blocked - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		checkoutService := service.NewCheckoutService(mockCartRepo, mockProductRepo)

		cart := &models.Cart{ID: uuid.New(), UserID: userID, Currency: "USD"}
		mockCartRepo.On("GetCart", mock.Anything, userID, "USD").Return(cart, nil).Once()

		// Act
		decision, err := checkoutService.Evaluate(ctx, userID, usd)

		// Assert
		assert.NoError(t, err)
		assert.False(t, decision.Eligible())
		assert.Equal(t, "Cart is empty", decision.Blocks[0].Reason)
	})

	t.Run("Eligible", func(t *testing.T) {
		// Arrange
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		checkoutService := service.NewCheckoutService(mockCartRepo, mockProductRepo)

		cartID := uuid.New()
		productID := uuid.New()
		cart := &models.Cart{
			ID: cartID, UserID: userID, Currency: "USD",
			Items: []models.CartItem{cartItem(cartID, productID, 2, "10.00")},
		}

		mockCartRepo.On("GetCart", mock.Anything, userID, "USD").Return(cart, nil).Once()
		mockProductRepo.On("GetProductByID", mock.Anything, productID).Return(activeProduct(productID, "10.00", 5), nil).Once()

		// Act
		decision, err := checkoutService.Evaluate(ctx, userID, usd)

		// Assert
		assert.NoError(t, err)
		assert.True(t, decision.Eligible())
		assert.Empty(t, decision.Blocks)
	})

	t.Run("Blocked - Insufficient Stock", func(t *testing.T) {
		// Arrange: cart wants 5, stock dropped to 2 since the add
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		checkoutService := service.NewCheckoutService(mockCartRepo, mockProductRepo)

		cartID := uuid.New()
		productID := uuid.New()
		item := cartItem(cartID, productID, 5, "10.00")
		cart := &models.Cart{ID: cartID, UserID: userID, Currency: "USD", Items: []models.CartItem{item}}

		mockCartRepo.On("GetCart", mock.Anything, userID, "USD").Return(cart, nil).Once()
		mockProductRepo.On("GetProductByID", mock.Anything, productID).Return(activeProduct(productID, "10.00", 2), nil).Once()

		// Act
		decision, err := checkoutService.Evaluate(ctx, userID, usd)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.CheckoutBlocked, decision.Status)
		assert.Len(t, decision.Blocks, 1)
		assert.Equal(t, item.ID, decision.Blocks[0].ItemID)
		assert.Equal(t, `Only 2 of "Wireless Mouse" in stock, cart has 5`, decision.Blocks[0].Reason)
	})

	t.Run("Blocked - Product Vanished And Product Inactive", func(t *testing.T) {
		// Arrange: two offending lines, each gets its own reason
		mockCartRepo := new(MockCartRepository)
		mockProductRepo := new(MockProductRepository)
		checkoutService := service.NewCheckoutService(mockCartRepo, mockProductRepo)

		cartID := uuid.New()
		goneID := uuid.New()
		inactiveID := uuid.New()
		cart := &models.Cart{
			ID: cartID, UserID: userID, Currency: "USD",
			Items: []models.CartItem{
				cartItem(cartID, goneID, 1, "10.00"),
				cartItem(cartID, inactiveID, 1, "10.00"),
			},
		}

		inactive := activeProduct(inactiveID, "10.00", 5)
		inactive.IsActive = false

		mockCartRepo.On("GetCart", mock.Anything, userID, "USD").Return(cart, nil).Once()
		mockProductRepo.On("GetProductByID", mock.Anything, goneID).Return(nil, sql.ErrNoRows).Once()
		mockProductRepo.On("GetProductByID", mock.Anything, inactiveID).Return(inactive, nil).Once()

		// Act
		decision, err := checkoutService.Evaluate(ctx, userID, usd)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, decision.Blocks, 2)
		assert.Equal(t, "Product is no longer available", decision.Blocks[0].Reason)
		assert.Equal(t, `"Wireless Mouse" is no longer sold`, decision.Blocks[1].Reason)
		mockProductRepo.AssertExpectations(t)
	})
}
