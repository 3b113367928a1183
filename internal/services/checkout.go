package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/metrics"
	"github.com/storefront-dev/storefront-platform/internal/models"
	repository "github.com/storefront-dev/storefront-platform/internal/repositories"
)

type CheckoutService interface {
	Evaluate(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.CheckoutDecision, error)
}

type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCheckoutService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CheckoutService {
	return &checkoutService{cartRepo: cartRepo, productRepo: productRepo}
}

// Evaluate implements CheckoutService. The gate has exactly two outcomes:
// eligible, or blocked with a reason per offending line. Stock and activity
// are checked against the store at the moment of the call, deliberately
// bypassing any cache. There is no retry; the caller fixes the cart and
// asks again.
func (s *checkoutService) Evaluate(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.CheckoutDecision, error) {

	cart, err := s.cartRepo.GetCart(ctx, userID, currency.Code)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return blocked(models.CheckoutBlock{Reason: "Cart is empty"}), nil
		}

		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return blocked(models.CheckoutBlock{Reason: "Cart is empty"}), nil
	}

	var blocks []models.CheckoutBlock

	for _, item := range cart.Items {

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if stderrors.Is(err, sql.ErrNoRows) {
				blocks = append(blocks, models.CheckoutBlock{
					ItemID:    item.ID,
					ProductID: item.ProductID,
					Reason:    "Product is no longer available",
				})

				continue
			}

			return nil, errors.DatabaseError("Failed to verify product availability").WithError(err)
		}

		if !product.IsActive {
			blocks = append(blocks, models.CheckoutBlock{
				ItemID:    item.ID,
				ProductID: item.ProductID,
				Reason:    fmt.Sprintf("%q is no longer sold", product.Name),
			})

			continue
		}

		if product.StockQuantity < item.Quantity {
			blocks = append(blocks, models.CheckoutBlock{
				ItemID:    item.ID,
				ProductID: item.ProductID,
				Reason:    fmt.Sprintf("Only %d of %q in stock, cart has %d", product.StockQuantity, product.Name, item.Quantity),
			})
		}
	}

	if len(blocks) > 0 {
		return blocked(blocks...), nil
	}

	return &models.CheckoutDecision{Status: models.CheckoutEligible}, nil
}

func blocked(blocks ...models.CheckoutBlock) *models.CheckoutDecision {
	metrics.RecordCheckoutBlocked()

	return &models.CheckoutDecision{Status: models.CheckoutBlocked, Blocks: blocks}
}
