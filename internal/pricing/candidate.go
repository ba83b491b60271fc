package pricing

import (
	"strings"
	"time"

	"storefront-api/internal/model"
)

// Candidate is a normalized view of a discount extracted from a product,
// variant, category, or flash-sale record. Extraction is fail-closed: any
// entity whose discount data is malformed yields no candidate at all.
type Candidate struct {
	Amount        float64
	Type          DiscountType
	StartDate     *time.Time
	EndDate       *time.Time
	TargetParents []string
	Source        Source
}

// dateLayouts are the formats the upstream API has been observed to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses a discount-window boundary. An empty string means the
// side is open-ended (nil, ok). A non-empty string that fails every layout
// is a hard failure so the caller can invalidate the whole candidate.
func parseDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// newCandidate builds a candidate from raw entity fields, returning nil when
// the amount or type is unusable or either window date is malformed.
func newCandidate(amount model.Number, rawType, startRaw, endRaw string, targets model.TargetList, src Source) *Candidate {
	v, ok := amount.Float()
	if !ok || v <= 0 {
		return nil
	}

	dt, ok := ParseDiscountType(rawType)
	if !ok {
		return nil
	}

	start, ok := parseDate(startRaw)
	if !ok {
		return nil
	}
	end, ok := parseDate(endRaw)
	if !ok {
		return nil
	}

	return &Candidate{
		Amount:        v,
		Type:          dt,
		StartDate:     start,
		EndDate:       end,
		TargetParents: targets,
		Source:        src,
	}
}

// ActiveAt reports whether the candidate's validity window contains the
// given instant. Missing boundaries leave that side open.
func (c *Candidate) ActiveAt(now time.Time) bool {
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return true
}

// ValueOn computes the raw discount value against a base price.
func (c *Candidate) ValueOn(basePrice float64) float64 {
	if c.Type == DiscountPercent {
		return basePrice * c.Amount / 100
	}
	return c.Amount
}

// categoryCandidate extracts a candidate from any of the three category
// levels, which share the same discount fields.
func categoryCandidate(amount model.Number, rawType, startRaw, endRaw string, targets model.TargetList, src Source) *Candidate {
	return newCandidate(amount, rawType, startRaw, endRaw, targets, src)
}

// variantCandidate extracts the selected variant's own discount.
func variantCandidate(v *model.ProductVariant) *Candidate {
	if v == nil {
		return nil
	}
	return newCandidate(v.DiscountAmount, v.DiscountType, v.DiscountStartDate, v.DiscountEndDate, v.DiscountTargetParents, SourceVariant)
}

// productCandidate extracts the product's own blanket discount.
func productCandidate(p *model.Product) *Candidate {
	return newCandidate(p.DiscountAmount, p.DiscountType, p.DiscountStartDate, p.DiscountEndDate, p.DiscountTargetParents, SourceProduct)
}

// flashSaleCandidate extracts a flash-sale candidate from a product. An
// explicitly inactive sale short-circuits to nil. Three representations are
// tried in order: a nested object with an explicit sale price below base, a
// nested object with discount fields, and the flattened top-level fields.
func flashSaleCandidate(p *model.Product, basePrice float64) *Candidate {
	fs := p.FlashSale

	if fs != nil {
		if fs.IsActive.IsFalse() || fs.Active.IsFalse() || strings.EqualFold(strings.TrimSpace(fs.Status), "inactive") {
			return nil
		}

		salePrice, ok := fs.SalePrice.Float()
		if !ok {
			salePrice, ok = fs.Price.Float()
		}
		if ok && salePrice >= 0 && salePrice < basePrice {
			// Synthesize a fixed discount equal to the markdown.
			return newCandidate(
				model.NumberFrom(basePrice-salePrice),
				string(DiscountFixed),
				fs.StartDate, fs.EndDate,
				nil, SourceFlashSale,
			)
		}

		if c := newCandidate(fs.DiscountAmount, fs.DiscountType, fs.StartDate, fs.EndDate, nil, SourceFlashSale); c != nil {
			return c
		}
	}

	// Flattened top-level fields as a last resort.
	if salePrice, ok := p.FlashSalePrice.Float(); ok && salePrice >= 0 && salePrice < basePrice {
		return newCandidate(
			model.NumberFrom(basePrice-salePrice),
			string(DiscountFixed),
			p.FlashSaleStartDate, p.FlashSaleEndDate,
			nil, SourceFlashSale,
		)
	}

	return newCandidate(p.FlashSaleDiscountAmount, p.FlashSaleDiscountType, p.FlashSaleStartDate, p.FlashSaleEndDate, nil, SourceFlashSale)
}
