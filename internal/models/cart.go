package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID         uuid.UUID       `json:"id"`
	CartID     uuid.UUID       `json:"cart_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Valid reports whether a persisted line is well formed. Rows failing this
// are dropped at the repository boundary instead of being re-checked on
// every read.
func (i *CartItem) Valid() bool {
	if i.Quantity <= 0 {
		return false
	}

	if i.UnitPrice.IsNegative() {
		return false
	}

	return i.TotalPrice.Equal(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Currency  string     `json:"currency"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Quantity zero is rejected here on purpose: removal is its own operation,
// not a quantity update.
type UpdateQuantityRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type RemoveItemRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

// CartResponse is the cart plus its computed pricing summary.
type CartResponse struct {
	Cart    *Cart        `json:"cart"`
	Summary *CartSummary `json:"summary"`
}

type CartSummary struct {
	Currency string          `json:"currency"`
	Symbol   string          `json:"symbol"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
