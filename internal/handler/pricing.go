package handler

import (
	"encoding/json"
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
)

// PricingHandler handles ad-hoc pricing quotes
type PricingHandler struct{}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// QuoteRequest is the request for a pricing quote. The product payload is
// accepted in any of the shapes the catalog API emits; the storefront uses
// this endpoint for price preview on already-fetched products.
type QuoteRequest struct {
	Product       *model.Product `json:"product"`
	VariantID     model.ID       `json:"variant_id"`
	VariantKey    string         `json:"variant_key"`
	OverridePrice *float64       `json:"override_price"`
}

// Quote handles POST /api/v1/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}

	if req.Product == nil {
		BadRequest(w, "product is required")
		return
	}

	var variant *model.ProductVariant
	if !req.VariantID.IsZero() {
		variant = req.Product.FindVariantByID(req.VariantID)
	}
	if variant == nil && req.VariantKey != "" {
		variant = req.Product.FindVariantBySlug(req.VariantKey)
	}

	var result pricing.Result
	if variant == nil && req.VariantID.IsZero() && req.VariantKey == "" {
		result = pricing.CalculateProductListingPricing(req.Product, pricing.Options{OverridePrice: req.OverridePrice})
	} else {
		result = pricing.CalculateProductPricing(req.Product, pricing.Options{
			Variant:       variant,
			OverridePrice: req.OverridePrice,
		})
	}

	Success(w, "", result)
}
