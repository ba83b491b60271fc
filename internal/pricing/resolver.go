package pricing

import (
	"fmt"
	"math"
	"time"

	"storefront-api/internal/model"
)

// Options tunes a pricing calculation.
type Options struct {
	// Variant is the explicitly selected variant, if any.
	Variant *model.ProductVariant
	// OverridePrice replaces the variant/product price when a live price
	// lookup has already happened upstream.
	OverridePrice *float64
	// Now is the evaluation instant; zero means time.Now().
	Now time.Time
}

func (o Options) at() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// CalculateProductPricing resolves the effective price for a product,
// scanning discount candidates in fixed priority order and applying the
// first valid one. It never fails: malformed discount data disqualifies a
// candidate, a missing product yields a zero no-discount result.
func CalculateProductPricing(p *model.Product, opts Options) Result {
	if p == nil {
		return Result{Source: SourceNone}
	}

	basePrice := resolveBasePrice(p, opts)
	now := opts.at()
	parents := ProductParentIDs(p)

	for _, candidate := range collectCandidates(p, opts.Variant, basePrice) {
		if candidate == nil {
			continue
		}
		if !candidate.ActiveAt(now) {
			continue
		}
		if !parents.MatchesTargets(candidate.TargetParents) {
			continue
		}
		if candidate.ValueOn(basePrice) <= 0 {
			continue
		}
		return applyCandidate(basePrice, candidate)
	}

	if r, ok := compareAtResult(p, opts.Variant, basePrice); ok {
		return r
	}

	return Result{
		BasePrice:  basePrice,
		FinalPrice: basePrice,
		Source:     SourceNone,
	}
}

// CalculateProductListingPricing prices a product card. Without an explicit
// variant selection it surfaces the best discount available across the
// product's variants instead of showing no discount when only a child
// variant is discounted.
func CalculateProductListingPricing(p *model.Product, opts Options) Result {
	base := CalculateProductPricing(p, opts)

	if p == nil || opts.Variant != nil || base.HasDiscount || len(p.Variants) == 0 {
		return base
	}

	best := base
	for i := range p.Variants {
		vOpts := opts
		vOpts.Variant = &p.Variants[i]
		r := CalculateProductPricing(p, vOpts)
		if r.HasDiscount && r.DiscountValue > best.DiscountValue {
			best = r
		}
	}
	return best
}

// resolveBasePrice picks the first defined, non-negative of: override
// price, selected variant price, product price.
func resolveBasePrice(p *model.Product, opts Options) float64 {
	if opts.OverridePrice != nil && *opts.OverridePrice >= 0 {
		return *opts.OverridePrice
	}
	if opts.Variant != nil {
		if v, ok := opts.Variant.Price.Float(); ok && v >= 0 {
			return v
		}
	}
	if v, ok := p.Price.Float(); ok && v >= 0 {
		return v
	}
	return 0
}

// collectCandidates returns the discount candidates in priority order:
// flash sale, then category levels narrowest first, then the selected
// variant, then the product's own discount.
func collectCandidates(p *model.Product, variant *model.ProductVariant, basePrice float64) []*Candidate {
	candidates := make([]*Candidate, 0, 6)

	candidates = append(candidates, flashSaleCandidate(p, basePrice))

	if ssc := p.SubSubCategory; ssc != nil {
		candidates = append(candidates, categoryCandidate(
			ssc.DiscountAmount, ssc.DiscountType, ssc.DiscountStartDate, ssc.DiscountEndDate,
			ssc.DiscountTargetParents, SourceSubSubCategory,
		))
	}
	if sc := p.SubCategory; sc != nil {
		candidates = append(candidates, categoryCandidate(
			sc.DiscountAmount, sc.DiscountType, sc.DiscountStartDate, sc.DiscountEndDate,
			sc.DiscountTargetParents, SourceSubCategory,
		))
	}
	if c := p.Category; c != nil {
		candidates = append(candidates, categoryCandidate(
			c.DiscountAmount, c.DiscountType, c.DiscountStartDate, c.DiscountEndDate,
			c.DiscountTargetParents, SourceCategory,
		))
	}

	if variant != nil {
		candidates = append(candidates, variantCandidate(variant))
	}

	candidates = append(candidates, productCandidate(p))

	return candidates
}

// applyCandidate derives the final result from a winning candidate. The
// final price is clamped at zero and rounded to cents; the percent is
// always computed from the applied discount, never taken from source data.
func applyCandidate(basePrice float64, c *Candidate) Result {
	discountValue := c.ValueOn(basePrice)
	finalPrice := roundToCents(math.Max(basePrice-discountValue, 0))
	applied := basePrice - finalPrice

	percent := 0
	if basePrice > 0 {
		percent = int(math.Round(applied / basePrice * 100))
	}

	r := Result{
		BasePrice:       basePrice,
		FinalPrice:      finalPrice,
		OriginalPrice:   basePrice,
		HasDiscount:     true,
		DiscountValue:   discountValue,
		DiscountPercent: percent,
		Source:          c.Source,
	}
	if percent > 0 {
		r.BadgeText = fmt.Sprintf("-%d%%", percent)
	}
	return r
}

// roundToCents rounds half-up at the cent, never truncates.
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// compareAtResult applies the legacy compare-at fallback: when no
// structured discount exists but the compare-at price exceeds the base
// price, the markdown is treated as an implicit discount.
func compareAtResult(p *model.Product, variant *model.ProductVariant, basePrice float64) (Result, bool) {
	var compareAt float64
	var ok bool

	if variant != nil {
		compareAt, ok = variant.CompareAtPrice.Float()
	}
	if !ok {
		compareAt, ok = p.CompareAtPrice.Float()
	}
	if !ok || compareAt <= basePrice {
		return Result{}, false
	}

	discountValue := compareAt - basePrice
	percent := int(math.Round(discountValue / compareAt * 100))

	r := Result{
		BasePrice:       basePrice,
		FinalPrice:      basePrice,
		OriginalPrice:   compareAt,
		HasDiscount:     true,
		DiscountValue:   discountValue,
		DiscountPercent: percent,
		Source:          SourceCompareAt,
	}
	if percent > 0 {
		r.BadgeText = fmt.Sprintf("-%d%%", percent)
	}
	return r, true
}
