package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront-dev/storefront-platform/internal/cache"
	"github.com/storefront-dev/storefront-platform/internal/config"
	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/metrics"
	"github.com/storefront-dev/storefront-platform/internal/models"
	"github.com/storefront-dev/storefront-platform/internal/pricing"
	repository "github.com/storefront-dev/storefront-platform/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, currency models.Currency, req *models.AddItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, currency models.Currency, req *models.UpdateQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, currency models.Currency, itemID uuid.UUID) (*models.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID, currency models.Currency) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
	cacheCfg    *config.CacheConfig
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cacheStore cache.Cache, cacheCfg *config.CacheConfig) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, cache: cacheStore, cacheCfg: cacheCfg}
}

// GetCart implements CartService. A user with no cart yet gets an empty one
// back, not an error; carts come into existence on first add.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.CartResponse, error) {

	cacheKey := cache.CartKey(userID.String(), currency.Code)

	cached := &models.CartResponse{}

	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		slog.Warn("Cart cache lookup failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			cart = &models.Cart{UserID: userID, Currency: currency.Code}
		} else {
			return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
		}
	}

	resp := s.compose(cart, currency)

	if err := s.cache.Set(ctx, cacheKey, resp, s.cacheCfg.CartTTL); err != nil {
		slog.Warn("Failed to cache cart", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	return resp, nil
}

// AddItem implements CartService. Stock is checked here, at add time, not
// just at checkout: a line that cannot possibly be fulfilled never enters
// the cart.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, currency models.Currency, req *models.AddItemRequest) (*models.CartResponse, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if !product.IsActive {
		return nil, errors.NotFoundError("Product is no longer available")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID, currency.Code)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	// adding the same product again increments the existing line and keeps
	// the unit price captured at first add
	quantity := req.Quantity
	unitPrice := product.Price
	itemID := uuid.New()

	for _, existing := range cart.Items {
		if existing.ProductID == req.ProductID {
			quantity += existing.Quantity
			unitPrice = existing.UnitPrice
			itemID = existing.ID

			break
		}
	}

	if quantity > product.StockQuantity {
		return nil, errors.InsufficientStockError(
			fmt.Sprintf("Only %d of %q in stock", product.StockQuantity, product.Name))
	}

	item := &models.CartItem{
		ID:         itemID,
		CartID:     cart.ID,
		ProductID:  req.ProductID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: pricing.LineTotal(quantity, unitPrice),
	}

	if err := s.cartRepo.UpsertItem(ctx, cart, item); err != nil {
		return nil, s.mutationError(err, "Failed to add item to cart")
	}

	return s.refresh(ctx, userID, currency)
}

// UpdateQuantity implements CartService. Quantity zero is not a removal
// here; it is rejected outright. RemoveItem is the way to drop a line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, currency models.Currency, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {

	if req.Quantity < 1 {
		return nil, errors.ValidationError("Quantity must be at least 1; use remove to delete an item")
	}

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	var item *models.CartItem

	for i := range cart.Items {
		if cart.Items[i].ID == req.ItemID {
			item = &cart.Items[i]

			break
		}
	}

	if item == nil {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	item.Quantity = req.Quantity
	item.TotalPrice = pricing.LineTotal(req.Quantity, item.UnitPrice)

	if err := s.cartRepo.UpdateItemQuantity(ctx, cart, item); err != nil {
		return nil, s.mutationError(err, "Failed to update item quantity")
	}

	return s.refresh(ctx, userID, currency)
}

// RemoveItem implements CartService. Unconditional delete.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, currency models.Currency, itemID uuid.UUID) (*models.CartResponse, error) {

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if err := s.cartRepo.DeleteItem(ctx, cart, itemID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Item not found in the cart")
		}

		return nil, s.mutationError(err, "Failed to remove item from cart")
	}

	return s.refresh(ctx, userID, currency)
}

// ClearCart implements CartService. The cart row survives; only its lines go.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID, currency models.Currency) error {

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.cartRepo.ClearCart(ctx, cart); err != nil {
		return s.mutationError(err, "Failed to clear cart")
	}

	s.invalidate(ctx, userID, currency)

	return nil
}

// refresh invalidates the cached cart and re-reads it from the store, so
// the response reflects exactly what was persisted.
func (s *cartService) refresh(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.CartResponse, error) {

	s.invalidate(ctx, userID, currency)

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		return nil, errors.DatabaseError("Failed to reload cart").WithError(err)
	}

	return s.compose(cart, currency), nil
}

func (s *cartService) invalidate(ctx context.Context, userID uuid.UUID, currency models.Currency) {

	cacheKey := cache.CartKey(userID.String(), currency.Code)

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		slog.Warn("Failed to invalidate cart cache", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}
}

func (s *cartService) compose(cart *models.Cart, currency models.Currency) *models.CartResponse {

	summary := &models.CartSummary{
		Currency: currency.Code,
		Symbol:   currency.Symbol,
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}

	// no shipping fee on a cart with nothing in it
	if len(cart.Items) > 0 {
		summary = pricing.Compute(cart.Items, currency)
	}

	return &models.CartResponse{Cart: cart, Summary: summary}
}

func (s *cartService) mutationError(err error, message string) error {

	if stderrors.Is(err, repository.ErrVersionConflict) {
		metrics.RecordCartConflict()

		return errors.ConflictError("Cart was modified concurrently, reload and retry").WithError(err)
	}

	return errors.DatabaseError(message).WithError(err)
}
