package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func snapshotProduct() *model.Product {
	return &model.Product{
		ID:    model.IDFrom("1"),
		Name:  "Snapshot Product",
		Price: model.NumberFrom(100),
		Variants: []model.ProductVariant{
			{ID: model.IDFrom("11"), Slug: "small", Price: model.NumberFrom(80)},
			{ID: model.IDFrom("12"), Slug: "large", Price: model.NumberFrom(120)},
		},
	}
}

func TestResolveCartItemVariantByID(t *testing.T) {
	item := &model.CartItem{Product: snapshotProduct(), VariantID: model.IDFrom("12")}

	v := ResolveCartItemVariant(item)
	require.NotNil(t, v)
	assert.Equal(t, "large", v.Slug)
}

func TestResolveCartItemVariantByKeyFallback(t *testing.T) {
	item := &model.CartItem{
		Product:    snapshotProduct(),
		VariantID:  model.IDFrom("999"),
		VariantKey: "small",
	}

	v := ResolveCartItemVariant(item)
	require.NotNil(t, v)
	assert.Equal(t, "11", v.ID.String())
}

func TestResolveCartItemVariantNoMatch(t *testing.T) {
	item := &model.CartItem{
		Product:    snapshotProduct(),
		VariantID:  model.IDFrom("999"),
		VariantKey: "medium",
	}
	assert.Nil(t, ResolveCartItemVariant(item))

	item = &model.CartItem{Product: &model.Product{Price: model.NumberFrom(10)}}
	assert.Nil(t, ResolveCartItemVariant(item))

	assert.Nil(t, ResolveCartItemVariant(nil))
}

func TestGetCartItemPricingDegradedWithoutSnapshot(t *testing.T) {
	item := &model.CartItem{Price: 19.999, Qty: 1}

	p := GetCartItemPricingAt(item, testNow)
	assert.Equal(t, 20.0, p.UnitPrice)
	assert.False(t, p.HasDiscount)
	assert.Equal(t, 0.0, p.OriginalPrice)
}

func TestGetCartItemPricingReprices(t *testing.T) {
	product := snapshotProduct()
	product.DiscountAmount = model.NumberFrom(10)
	product.DiscountType = "percent"

	// Cached price is stale; the snapshot is authoritative.
	item := &model.CartItem{Product: product, VariantID: model.IDFrom("11"), Price: 80, Qty: 2}

	p := GetCartItemPricingAt(item, testNow)
	assert.True(t, p.HasDiscount)
	assert.Equal(t, 72.0, p.UnitPrice)
	assert.Equal(t, 80.0, p.OriginalPrice)
	assert.Equal(t, 10, p.DiscountPercent)
}

func TestGetCartItemPricingUnmatchedVariantFallsBackToProduct(t *testing.T) {
	item := &model.CartItem{
		Product:   snapshotProduct(),
		VariantID: model.IDFrom("999"),
		Price:     80,
	}

	p := GetCartItemPricingAt(item, testNow)
	assert.False(t, p.HasDiscount)
	assert.Equal(t, 100.0, p.UnitPrice)
}

func TestGetCartItemPricingRoundsHalfUp(t *testing.T) {
	product := &model.Product{
		Price:          model.NumberFrom(10.01),
		DiscountAmount: model.NumberFrom(33),
		DiscountType:   "percent",
	}
	item := &model.CartItem{Product: product}

	// 10.01 - 3.3033 = 6.7067 -> 6.71, never truncated to 6.70.
	p := GetCartItemPricingAt(item, testNow)
	assert.Equal(t, 6.71, p.UnitPrice)
}

func TestGetCartItemPricingIdempotent(t *testing.T) {
	product := snapshotProduct()
	product.DiscountAmount = model.NumberFrom(33)
	product.DiscountType = "percent"
	item := &model.CartItem{Product: product, VariantID: model.IDFrom("11"), Qty: 3}

	first := GetCartItemPricingAt(item, testNow)
	second := GetCartItemPricingAt(item, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, first.UnitPrice, second.UnitPrice)
}

func TestGetCartItemPricingDiscountPercentOnlyWhenPositive(t *testing.T) {
	product := &model.Product{
		Price:          model.NumberFrom(1000),
		DiscountAmount: model.NumberFrom(0.01),
		DiscountType:   "fixed",
	}
	item := &model.CartItem{Product: product}

	// 0.01 off 1000 rounds to 0%; the percent is suppressed.
	p := GetCartItemPricingAt(item, testNow)
	assert.True(t, p.HasDiscount)
	assert.Equal(t, 0, p.DiscountPercent)
}

func TestComputeTotals(t *testing.T) {
	discounted := snapshotProduct()
	discounted.DiscountAmount = model.NumberFrom(10)
	discounted.DiscountType = "percent"

	plain := &model.Product{Price: model.NumberFrom(5.25)}

	items := []model.CartItem{
		{Product: discounted, VariantID: model.IDFrom("11"), Qty: 2}, // 72.00 each, was 80.00
		{Product: plain, Qty: 3},                                     // 5.25 each
		{Price: 9.99, Qty: 1},                                        // degraded, cached price
		{Product: plain, Qty: 0},                                     // ignored
	}

	totals := ComputeTotals(items, testNow)
	assert.Equal(t, 6, totals.Items)
	assert.Equal(t, 185.74, totals.Subtotal) // 160 + 15.75 + 9.99
	assert.Equal(t, 16.0, totals.Discount)   // (80-72) * 2
	assert.Equal(t, 169.74, totals.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, testNow)
	assert.Equal(t, Totals{}, totals)
}
