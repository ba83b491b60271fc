package model

import "time"

// CartItem is a persisted cart line. It stores a denormalized snapshot of
// the product (with variants) so the line can be displayed and re-priced
// without a catalog round trip. Price is the unit price cached at add time;
// it is a snapshot, never the source of truth.
type CartItem struct {
	ID         string    `json:"id" db:"id"`
	MemberID   int64     `json:"-" db:"member_id"`
	ProductID  ID        `json:"product_id" db:"product_id"`
	VariantID  ID        `json:"variant_id,omitempty" db:"variant_id"`
	VariantKey string    `json:"variant_key,omitempty" db:"variant_key"`
	Price      float64   `json:"price" db:"price"`
	Qty        int       `json:"qty" db:"qty"`
	Product    *Product  `json:"product,omitempty" db:"product_snapshot"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// AddCartItemRequest is the request body for adding a line to the cart.
type AddCartItemRequest struct {
	ProductSlug string `json:"product_slug"`
	VariantID   ID     `json:"variant_id"`
	VariantKey  string `json:"variant_key"`
	Qty         int    `json:"qty"`
}

// UpdateCartItemRequest is the request body for changing a line's quantity.
type UpdateCartItemRequest struct {
	Qty int `json:"qty"`
}
