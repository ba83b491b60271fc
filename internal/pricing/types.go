package pricing

import (
	"strings"
)

// DiscountType discriminates how a discount amount is interpreted.
type DiscountType string

// DiscountType constants
const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

// ParseDiscountType normalizes a raw discriminator string. "percentage" is
// accepted as a legacy synonym for "percent"; anything else that is not
// "fixed" is rejected.
func ParseDiscountType(raw string) (DiscountType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fixed":
		return DiscountFixed, true
	case "percent", "percentage":
		return DiscountPercent, true
	default:
		return "", false
	}
}

// Source identifies which discount mechanism produced a pricing result.
type Source string

// Source constants, in priority order (highest first)
const (
	SourceFlashSale      Source = "flash_sale"
	SourceSubSubCategory Source = "sub_sub_category"
	SourceSubCategory    Source = "sub_category"
	SourceCategory       Source = "category"
	SourceVariant        Source = "variant"
	SourceProduct        Source = "product"
	SourceCompareAt      Source = "compare_at_price"
	SourceNone           Source = "none"
)

// Result is the outcome of pricing a product (optionally a variant) at a
// point in time.
type Result struct {
	BasePrice       float64 `json:"base_price"`
	FinalPrice      float64 `json:"final_price"`
	OriginalPrice   float64 `json:"original_price,omitempty"`
	HasDiscount     bool    `json:"has_discount"`
	DiscountValue   float64 `json:"discount_value"`
	DiscountPercent int     `json:"discount_percent"`
	BadgeText       string  `json:"badge_text,omitempty"`
	Source          Source  `json:"source"`
}
