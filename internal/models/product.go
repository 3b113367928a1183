package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Images        []string        `json:"images"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=3,max=200"`
	Description   string          `json:"description,omitempty"`
	Brand         string          `json:"brand" validate:"required,max=100"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	OriginalPrice decimal.Decimal `json:"original_price,omitempty"`
	Images        []string        `json:"images,omitempty" validate:"omitempty,dive,url"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string          `json:"description,omitempty"`
	Brand         *string          `json:"brand,omitempty" validate:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Images        *[]string        `json:"images,omitempty" validate:"omitempty,dive,url"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// for eg: GET /products?brand=acme&active=true&page=1
type ProductFilter struct {
	Brand      string
	ActiveOnly bool
	Page       int
	PageSize   int
}
