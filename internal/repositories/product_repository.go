package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/models"
	"github.com/storefront-dev/storefront-platform/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `INSERT INTO products (id, name, description, brand, price, original_price, images, stock_quantity, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Name, product.Description, product.Brand,
		product.Price, product.OriginalPrice, imagesJSON, product.StockQuantity, product.IsActive).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, brand, price, original_price, images, stock_quantity, is_active, created_at, updated_at
		FROM products
		WHERE id = $1`

	var imagesJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description,
		&product.Brand, &product.Price, &product.OriginalPrice, &imagesJSON, &product.StockQuantity,
		&product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `
		UPDATE products SET name = $1, description = $2, brand = $3, price = $4, original_price = $5, images = $6, stock_quantity = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Brand, product.Price,
		product.OriginalPrice, imagesJSON, product.StockQuantity, product.IsActive, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE ($1 = '' OR brand = $1) AND (NOT $2 OR is_active)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, filter.Brand, filter.ActiveOnly).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (filter.Page - 1) * filter.PageSize

	query := `
		SELECT id, name, description, brand, price, original_price, images, stock_quantity, is_active, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR brand = $1) AND (NOT $2 OR is_active)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.DB.QueryContext(dbCtx, query, filter.Brand, filter.ActiveOnly, filter.PageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		var imagesJSON []byte

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Brand, &product.Price,
			&product.OriginalPrice, &imagesJSON, &product.StockQuantity, &product.IsActive,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal product images: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
