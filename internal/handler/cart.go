package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"storefront-api/internal/cart"
	"storefront-api/internal/middleware"
	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
	"storefront-api/internal/repository"
)

// CartHandler handles cart HTTP requests. Every read re-derives current
// prices from the stored product snapshots instead of trusting the cached
// unit prices.
type CartHandler struct {
	cartRepo    *repository.CartRepository
	productRepo *repository.ProductRepository
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartRepo *repository.CartRepository, productRepo *repository.ProductRepository) *CartHandler {
	return &CartHandler{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartLine is one repriced cart line as returned to the frontend
type CartLine struct {
	Item    model.CartItem   `json:"item"`
	Pricing cart.ItemPricing `json:"pricing"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, ok := middleware.MemberIDFromContext(ctx)
	if !ok {
		Unauthorized(w, "Not authenticated")
		return
	}

	items, err := h.cartRepo.GetByMember(ctx, memberID)
	if err != nil {
		log.Printf("Error loading cart for member %d: %v", memberID, err)
		InternalError(w, "Failed to load cart")
		return
	}

	now := time.Now()
	lines := make([]CartLine, 0, len(items))
	for i := range items {
		p := cart.GetCartItemPricingAt(&items[i], now)
		lines = append(lines, CartLine{Item: items[i], Pricing: p})

		// Refresh the cached price when it has drifted. Best effort: the
		// response already carries the fresh price either way.
		if items[i].Product != nil && p.UnitPrice != items[i].Price {
			if err := h.cartRepo.UpdateCachedPrice(ctx, items[i].ID, p.UnitPrice); err != nil {
				log.Printf("Error refreshing cached price for cart item %s: %v", items[i].ID, err)
			}
		}
	}

	Success(w, "", map[string]interface{}{
		"lines":  lines,
		"totals": cart.ComputeTotals(items, now),
	})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, ok := middleware.MemberIDFromContext(ctx)
	if !ok {
		Unauthorized(w, "Not authenticated")
		return
	}

	var req model.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}
	if req.ProductSlug == "" {
		BadRequest(w, "product_slug is required")
		return
	}
	if req.Qty <= 0 {
		BadRequest(w, "qty must be positive")
		return
	}

	product, err := h.productRepo.GetBySlug(ctx, req.ProductSlug)
	if err != nil {
		InternalError(w, "Failed to load product")
		return
	}
	if product == nil {
		NotFound(w, "Product not found")
		return
	}

	var variant *model.ProductVariant
	if !req.VariantID.IsZero() {
		variant = product.FindVariantByID(req.VariantID)
	}
	if variant == nil && req.VariantKey != "" {
		variant = product.FindVariantBySlug(req.VariantKey)
	}
	if variant == nil && (!req.VariantID.IsZero() || req.VariantKey != "") {
		NotFound(w, "Variant not found")
		return
	}

	result := pricing.CalculateProductPricing(product, pricing.Options{Variant: variant})

	item := model.CartItem{
		MemberID:   memberID,
		ProductID:  product.ID,
		VariantKey: req.VariantKey,
		Price:      cart.RoundToCents(result.FinalPrice),
		Qty:        req.Qty,
		Product:    product,
	}
	if variant != nil {
		item.VariantID = variant.ID
		if item.VariantKey == "" {
			item.VariantKey = variant.Slug
		}
	}

	if err := h.cartRepo.Add(ctx, &item); err != nil {
		log.Printf("Error adding cart item: %v", err)
		InternalError(w, "Failed to add item to cart")
		return
	}

	Created(w, "Item added to cart", CartLine{
		Item:    item,
		Pricing: cart.GetCartItemPricing(&item),
	})
}

// UpdateItem handles PUT /api/v1/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, ok := middleware.MemberIDFromContext(ctx)
	if !ok {
		Unauthorized(w, "Not authenticated")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		BadRequest(w, "Cart item id must not be empty")
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "Invalid request body")
		return
	}
	if req.Qty <= 0 {
		BadRequest(w, "qty must be positive")
		return
	}

	if err := h.cartRepo.UpdateQty(ctx, memberID, id, req.Qty); err != nil {
		NotFound(w, "Cart item not found")
		return
	}

	item, err := h.cartRepo.GetByID(ctx, memberID, id)
	if err != nil || item == nil {
		InternalError(w, "Failed to reload cart item")
		return
	}

	Success(w, "Cart item updated", CartLine{
		Item:    *item,
		Pricing: cart.GetCartItemPricing(item),
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID, ok := middleware.MemberIDFromContext(ctx)
	if !ok {
		Unauthorized(w, "Not authenticated")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		BadRequest(w, "Cart item id must not be empty")
		return
	}

	if err := h.cartRepo.Remove(ctx, memberID, id); err != nil {
		NotFound(w, "Cart item not found")
		return
	}

	Success(w, "Cart item removed", nil)
}
