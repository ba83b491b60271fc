package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-api/internal/model"
)

// Totals aggregates a cart's monetary summary over its repriced lines.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
	Items    int     `json:"items"`
}

// ComputeTotals reprices every line and sums qty x unit price. Subtotal is
// the pre-discount sum, Total the amount actually payable. The per-line
// unit prices are already cent-rounded; the aggregation itself runs on
// decimals so large carts cannot accumulate float error.
func ComputeTotals(items []model.CartItem, now time.Time) Totals {
	subtotal := decimal.Zero
	total := decimal.Zero
	count := 0

	for i := range items {
		item := &items[i]
		if item.Qty <= 0 {
			continue
		}

		p := GetCartItemPricingAt(item, now)
		qty := decimal.NewFromInt(int64(item.Qty))
		unit := decimal.NewFromFloat(p.UnitPrice)

		line := unit.Mul(qty)
		total = total.Add(line)

		if p.HasDiscount && p.OriginalPrice > p.UnitPrice {
			subtotal = subtotal.Add(decimal.NewFromFloat(p.OriginalPrice).Mul(qty))
		} else {
			subtotal = subtotal.Add(line)
		}
		count += item.Qty
	}

	sub, _ := subtotal.Round(2).Float64()
	pay, _ := total.Round(2).Float64()
	disc, _ := subtotal.Sub(total).Round(2).Float64()

	return Totals{
		Subtotal: sub,
		Discount: disc,
		Total:    pay,
		Items:    count,
	}
}
