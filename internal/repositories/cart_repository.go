package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/models"
	"github.com/storefront-dev/storefront-platform/internal/utils"
)

// ErrVersionConflict is returned when a cart mutation loses the optimistic
// concurrency race: somebody else bumped the cart version since it was read.
var ErrVersionConflict = errors.New("cart version conflict")

type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error)
	UpsertItem(ctx context.Context, cart *models.Cart, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, cart *models.Cart, item *models.CartItem) error
	DeleteItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID) error
	ClearCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, currency, version, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND currency = $2
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID, currency).
		Scan(&cart.ID, &cart.UserID, &cart.Currency, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	items, err := r.loadItems(dbCtx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items

	return cart, nil
}

func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID, currency string) (*models.Cart, error) {

	cart, err := r.GetCart(ctx, userID, currency)
	if err == nil {
		return cart, nil
	}

	if err != sql.ErrNoRows {
		return nil, err
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Created lazily on first add.
	query := `
		INSERT INTO carts (id, user_id, currency, version, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	cart = &models.Cart{ID: uuid.New(), UserID: userID, Currency: currency}

	err = r.DB.QueryRowContext(dbCtx, query, cart.ID, userID, currency).
		Scan(&cart.ID, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cart *models.Cart, item *models.CartItem) error {

	return r.mutate(ctx, cart, func(tx *sql.Tx) error {

		query := `
			INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, total_price, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			ON CONFLICT (cart_id, product_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, total_price = EXCLUDED.total_price, updated_at = NOW()
			RETURNING id, created_at, updated_at
		`

		return tx.QueryRowContext(ctx, query, item.ID, cart.ID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice).
			Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	})
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cart *models.Cart, item *models.CartItem) error {

	return r.mutate(ctx, cart, func(tx *sql.Tx) error {

		query := `
			UPDATE cart_items
			SET quantity = $1, total_price = $2, updated_at = NOW()
			WHERE id = $3 AND cart_id = $4
			RETURNING updated_at
		`

		err := tx.QueryRowContext(ctx, query, item.Quantity, item.TotalPrice, item.ID, cart.ID).Scan(&item.UpdatedAt)
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}

		return err
	})
}

func (r *cartRepository) DeleteItem(ctx context.Context, cart *models.Cart, itemID uuid.UUID) error {

	return r.mutate(ctx, cart, func(tx *sql.Tx) error {

		result, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}

		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get deleted rows: %w", err)
		}

		if deleted == 0 {
			return sql.ErrNoRows
		}

		return nil
	})
}

// ClearCart empties the cart but keeps the cart row itself.
func (r *cartRepository) ClearCart(ctx context.Context, cart *models.Cart) error {

	return r.mutate(ctx, cart, func(tx *sql.Tx) error {

		_, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
}

// mutate runs op inside a transaction guarded by a compare-and-swap on the
// cart version. Two tabs editing the same cart serialize here: the loser
// gets ErrVersionConflict and has to reload.
func (r *cartRepository) mutate(ctx context.Context, cart *models.Cart, op func(tx *sql.Tx) error) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(dbCtx, `
		UPDATE carts SET version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`, cart.ID, cart.Version)
	if err != nil {
		return fmt.Errorf("failed to bump cart version: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrVersionConflict
	}

	if err := op(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart mutation: %w", err)
	}

	cart.Version++

	return nil
}

// loadItems joins lines against products so that lines whose product no
// longer resolves simply disappear from the result. Rows that survive the
// join but fail validation are dropped and logged, not returned.
func (r *cartRepository) loadItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {

	query := `
		SELECT i.id, i.cart_id, i.product_id, i.quantity, i.unit_price, i.total_price, i.created_at, i.updated_at
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id = $1
		ORDER BY i.created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("querying cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.TotalPrice, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if !item.Valid() {
			slog.Warn("Dropping malformed cart item",
				slog.String("itemId", item.ID.String()),
				slog.String("cartId", cartID.String()))

			continue
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
