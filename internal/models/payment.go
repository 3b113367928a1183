package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	ProviderOrderID string          `json:"provider_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          PaymentStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CapturePaymentRequest captures a previously-created provider order. Order
// creation belongs to the provider's front-end flow, not this service.
type CapturePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type CapturePaymentResponse struct {
	Payment *Payment `json:"payment"`
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
}
