// Package pricing derives cart totals from line items and a currency
// context. It is a pure function of its inputs: no I/O, no clock, no
// ambient state.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/storefront-dev/storefront-platform/internal/models"
)

var (
	// Orders strictly above the threshold ship free; at or below it the
	// flat fee applies.
	FreeShippingThreshold = decimal.NewFromFloat(35.00)
	FlatShippingFee       = decimal.NewFromFloat(5.99)
	TaxRate               = decimal.NewFromFloat(0.08)
)

// Compute aggregates subtotal, shipping, tax and total for the given lines.
// Malformed lines (non-positive quantity, negative price, or a stored total
// that disagrees with quantity x unit price) are skipped, not fatal: a bad
// row in the cart must never take the whole cart page down.
//
// Rounding is half-up at the currency's minor-unit precision and happens
// exactly once, here, when the summary is assembled. Intermediate sums stay
// exact so the error cannot compound.
func Compute(items []models.CartItem, currency models.Currency) *models.CartSummary {

	subtotal := decimal.Zero

	for _, item := range items {
		if !item.Valid() {
			continue
		}

		subtotal = subtotal.Add(item.TotalPrice)
	}

	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(shipping).Add(tax)

	places := currency.MinorUnits

	return &models.CartSummary{
		Currency: currency.Code,
		Symbol:   currency.Symbol,
		Subtotal: subtotal.Round(places),
		Shipping: shipping.Round(places),
		Tax:      tax.Round(places),
		Total:    total.Round(places),
	}
}

// LineTotal is the single place the quantity x unit price invariant is
// computed, so every mutation path agrees on it.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
