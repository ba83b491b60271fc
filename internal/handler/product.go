package handler

import (
	"net/http"

	"storefront-api/internal/model"
	"storefront-api/internal/pricing"
	"storefront-api/internal/repository"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productRepo *repository.ProductRepository
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productRepo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
	}
}

// PricedProduct is a product with its resolved pricing attached
type PricedProduct struct {
	Product model.Product  `json:"product"`
	Pricing pricing.Result `json:"pricing"`
}

// GetProducts handles GET /api/v1/products
//
// Product cards are priced with the listing fallback so a discounted
// variant still shows a badge when the product itself has no discount.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	dbProducts, err := h.productRepo.GetPublished(ctx, category)
	if err != nil {
		InternalError(w, "Failed to load products")
		return
	}

	products := make([]PricedProduct, 0, len(dbProducts))
	for i := range dbProducts {
		products = append(products, PricedProduct{
			Product: dbProducts[i],
			Pricing: pricing.CalculateProductListingPricing(&dbProducts[i], pricing.Options{}),
		})
	}

	Success(w, "", map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// GetProductBySlug handles GET /api/v1/products/{slug}
//
// An optional ?variant= query parameter (variant ID or slug) selects a
// variant for pricing.
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	if slug == "" {
		BadRequest(w, "Product slug must not be empty")
		return
	}

	product, err := h.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		InternalError(w, "Failed to load product")
		return
	}
	if product == nil {
		NotFound(w, "Product not found")
		return
	}

	var variant *model.ProductVariant
	if key := r.URL.Query().Get("variant"); key != "" {
		variant = product.FindVariantByID(model.IDFrom(key))
		if variant == nil {
			variant = product.FindVariantBySlug(key)
		}
		if variant == nil {
			NotFound(w, "Variant not found")
			return
		}
	}

	result := pricing.CalculateProductPricing(product, pricing.Options{Variant: variant})

	Success(w, "", PricedProduct{
		Product: *product,
		Pricing: result,
	})
}

// GetCategories handles GET /api/v1/categories
//
// Returns all three hierarchy levels so the frontend can build the tree and
// show active discount metadata per level.
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.productRepo.GetCategories(ctx)
	if err != nil {
		InternalError(w, "Failed to load categories")
		return
	}
	subCategories, err := h.productRepo.GetSubCategories(ctx)
	if err != nil {
		InternalError(w, "Failed to load sub-categories")
		return
	}
	subSubCategories, err := h.productRepo.GetSubSubCategories(ctx)
	if err != nil {
		InternalError(w, "Failed to load sub-sub-categories")
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}
	if subCategories == nil {
		subCategories = []model.SubCategory{}
	}
	if subSubCategories == nil {
		subSubCategories = []model.SubSubCategory{}
	}

	Success(w, "", map[string]interface{}{
		"categories":         categories,
		"sub_categories":     subCategories,
		"sub_sub_categories": subSubCategories,
	})
}
