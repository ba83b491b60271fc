package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

// CartRepository handles database operations for cart lines
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// GetByMember retrieves all cart lines for a member, decoding each stored
// product snapshot through the tolerant model boundary
func (r *CartRepository) GetByMember(ctx context.Context, memberID int64) ([]model.CartItem, error) {
	query := `
		SELECT id, member_id, product_id, variant_id, variant_key, price, qty,
		       product_snapshot, created_at, updated_at
		FROM cart_items
		WHERE member_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *item)
	}

	return items, nil
}

// GetByID retrieves a single cart line owned by the member
func (r *CartRepository) GetByID(ctx context.Context, memberID int64, id string) (*model.CartItem, error) {
	query := `
		SELECT id, member_id, product_id, variant_id, variant_key, price, qty,
		       product_snapshot, created_at, updated_at
		FROM cart_items
		WHERE member_id = $1 AND id = $2
	`

	rows, err := r.db.Query(ctx, query, memberID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	item, err := scanCartItem(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}

	return item, nil
}

// Add inserts a cart line, merging quantity into an existing line for the
// same product/variant if present
func (r *CartRepository) Add(ctx context.Context, item *model.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	snapshot, err := json.Marshal(item.Product)
	if err != nil {
		return fmt.Errorf("failed to encode product snapshot: %w", err)
	}

	query := `
		INSERT INTO cart_items (
			id, member_id, product_id, variant_id, variant_key,
			price, qty, product_snapshot
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (member_id, product_id, variant_id, variant_key) DO UPDATE SET
			qty = cart_items.qty + EXCLUDED.qty,
			price = EXCLUDED.price,
			product_snapshot = EXCLUDED.product_snapshot,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		item.ID, item.MemberID, item.ProductID.String(), item.VariantID.String(), item.VariantKey,
		item.Price, item.Qty, snapshot,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// UpdateQty changes a line's quantity
func (r *CartRepository) UpdateQty(ctx context.Context, memberID int64, id string, qty int) error {
	query := `
		UPDATE cart_items SET qty = $3, updated_at = NOW()
		WHERE member_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, memberID, id, qty)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item not found")
	}

	return nil
}

// UpdateCachedPrice refreshes the snapshot unit price after repricing
func (r *CartRepository) UpdateCachedPrice(ctx context.Context, id string, price float64) error {
	query := `UPDATE cart_items SET price = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, price); err != nil {
		return fmt.Errorf("failed to update cached price: %w", err)
	}

	return nil
}

// Remove deletes a cart line
func (r *CartRepository) Remove(ctx context.Context, memberID int64, id string) error {
	query := `DELETE FROM cart_items WHERE member_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, memberID, id)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item not found")
	}

	return nil
}

// scanCartItem scans one row, tolerating snapshots that fail to decode
// (the line then reprices in degraded mode from its cached price)
func scanCartItem(rows pgx.Rows) (*model.CartItem, error) {
	var (
		item       model.CartItem
		productID  string
		variantID  *string
		variantKey *string
		snapshot   []byte
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := rows.Scan(
		&item.ID, &item.MemberID, &productID, &variantID, &variantKey,
		&item.Price, &item.Qty, &snapshot, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ProductID = model.IDFrom(productID)
	if variantID != nil {
		item.VariantID = model.IDFrom(*variantID)
	}
	if variantKey != nil {
		item.VariantKey = *variantKey
	}
	item.CreatedAt = createdAt
	item.UpdatedAt = updatedAt

	if len(snapshot) > 0 {
		var p model.Product
		if err := json.Unmarshal(snapshot, &p); err == nil {
			item.Product = &p
		}
	}

	return &item, nil
}
