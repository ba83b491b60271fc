// Package cart re-derives cart line prices from their product snapshots.
// The cached price on a line is a snapshot from add time; screens call back
// into this package whenever prices may have drifted.
package cart

import (
	"math"
	"time"

	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
)

// ItemPricing is the repriced view of a single cart line.
type ItemPricing struct {
	UnitPrice       float64 `json:"unit_price"`
	OriginalPrice   float64 `json:"original_price,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	HasDiscount     bool    `json:"has_discount"`
}

// ResolveCartItemVariant finds the line's variant in the product snapshot,
// first by variant ID, then by variant key against variant slugs. Returns
// nil when the product has no variants or nothing matches.
func ResolveCartItemVariant(item *model.CartItem) *model.ProductVariant {
	if item == nil || item.Product == nil || len(item.Product.Variants) == 0 {
		return nil
	}

	if v := item.Product.FindVariantByID(item.VariantID); v != nil {
		return v
	}
	return item.Product.FindVariantBySlug(item.VariantKey)
}

// GetCartItemPricing re-derives the line's current unit price at the
// current time.
func GetCartItemPricing(item *model.CartItem) ItemPricing {
	return GetCartItemPricingAt(item, time.Now())
}

// GetCartItemPricingAt re-derives the line's current unit price at the
// given instant. Without a product snapshot the cached price is returned
// unchanged, rounded to cents, with no discount (degraded mode).
func GetCartItemPricingAt(item *model.CartItem, now time.Time) ItemPricing {
	if item == nil {
		return ItemPricing{}
	}

	if item.Product == nil {
		return ItemPricing{UnitPrice: RoundToCents(item.Price)}
	}

	variant := ResolveCartItemVariant(item)
	result := pricing.CalculateProductPricing(item.Product, pricing.Options{
		Variant: variant,
		Now:     now,
	})

	p := ItemPricing{
		UnitPrice:   RoundToCents(result.FinalPrice),
		HasDiscount: result.HasDiscount,
	}
	if result.HasDiscount {
		p.OriginalPrice = RoundToCents(result.OriginalPrice)
		if result.DiscountPercent > 0 {
			p.DiscountPercent = result.DiscountPercent
		}
	}
	return p
}

// RoundToCents rounds half-up at the cent. Monetary outputs are always
// rounded, never truncated, so repeated recalculation cannot drift.
func RoundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
