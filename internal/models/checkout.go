package models

import "github.com/google/uuid"

type CheckoutStatus string

const (
	CheckoutEligible CheckoutStatus = "eligible"
	CheckoutBlocked  CheckoutStatus = "blocked"
)

// CheckoutBlock names one offending cart line and why it blocks checkout.
type CheckoutBlock struct {
	ItemID    uuid.UUID `json:"item_id"`
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

type CheckoutDecision struct {
	Status CheckoutStatus  `json:"status"`
	Blocks []CheckoutBlock `json:"blocks,omitempty"`
}

func (d *CheckoutDecision) Eligible() bool {
	return d.Status == CheckoutEligible
}
