package model

import (
	"bytes"
	"encoding/json"
)

// FlashSale is a time-limited promotional override attached to a product.
// The upstream API emits it in two nested shapes: with an explicit sale
// price, or with discount_amount/discount_type fields. The inactive flag
// arrives under three different names depending on the endpoint.
type FlashSale struct {
	SalePrice      Number `json:"sale_price"`
	Price          Number `json:"price"`
	DiscountAmount Number `json:"discount_amount"`
	DiscountType   string `json:"discount_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	IsActive       Bool   `json:"is_active"`
	Active         Bool   `json:"active"`
	Status         string `json:"status"`
}

// ProductVariant is a purchasable variation of a product. It may override
// the product's price and carry its own discount, but inherits the parent
// product's category hierarchy for discount matching.
type ProductVariant struct {
	ID                    ID         `json:"id"`
	Slug                  string     `json:"slug"`
	Name                  string     `json:"name"`
	Price                 Number     `json:"price"`
	CompareAtPrice        Number     `json:"compare_at_price"`
	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`
	StockQuantity         Number     `json:"stock_quantity"`
}

// Product is a catalog product as returned by the remote API. Relation
// objects and flattened flash-sale fields are normalized at decode time so
// pricing logic only ever sees the canonical fields.
type Product struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Status         string `json:"status"`
	Price          Number `json:"price"`
	CompareAtPrice Number `json:"compare_at_price"`

	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`

	FlashSale *FlashSale `json:"flash_sale,omitempty"`

	// Flattened flash-sale fields, used by endpoints that do not nest the
	// flash_sale object.
	FlashSalePrice          Number `json:"flash_sale_price"`
	FlashSaleDiscountAmount Number `json:"flash_sale_discount_amount"`
	FlashSaleDiscountType   string `json:"flash_sale_discount_type"`
	FlashSaleStartDate      string `json:"flash_sale_start_date"`
	FlashSaleEndDate        string `json:"flash_sale_end_date"`

	CategoryID       ID `json:"category_id"`
	SubCategoryID    ID `json:"sub_category_id"`
	SubSubCategoryID ID `json:"sub_sub_category_id"`

	Category       *Category       `json:"category,omitempty"`
	SubCategory    *SubCategory    `json:"sub_category,omitempty"`
	SubSubCategory *SubSubCategory `json:"sub_sub_category,omitempty"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

// productAlias mirrors Product for decoding without recursing into the
// custom unmarshaler, plus the legacy camelCase relation names and the raw
// sub-sub-category payload (which may be an object or an array of one).
type productAlias struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Status         string `json:"status"`
	Price          Number `json:"price"`
	CompareAtPrice Number `json:"compare_at_price"`

	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`

	FlashSale *FlashSale `json:"flash_sale"`

	FlashSalePrice          Number `json:"flash_sale_price"`
	FlashSaleDiscountAmount Number `json:"flash_sale_discount_amount"`
	FlashSaleDiscountType   string `json:"flash_sale_discount_type"`
	FlashSaleStartDate      string `json:"flash_sale_start_date"`
	FlashSaleEndDate        string `json:"flash_sale_end_date"`

	CategoryID       ID `json:"category_id"`
	SubCategoryID    ID `json:"sub_category_id"`
	SubSubCategoryID ID `json:"sub_sub_category_id"`

	Category            *Category       `json:"category"`
	SubCategory         *SubCategory    `json:"sub_category"`
	SubCategoryCamel    *SubCategory    `json:"subCategory"`
	SubSubCategoryRaw   json.RawMessage `json:"sub_sub_category"`
	SubSubCategoryCamel json.RawMessage `json:"subSubCategory"`

	Variants []ProductVariant `json:"variants"`
}

// UnmarshalJSON merges the snake_case and camelCase relation spellings and
// the array-of-one sub-sub-category shape into the canonical fields.
func (p *Product) UnmarshalJSON(data []byte) error {
	var aux productAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Product{
		ID:             aux.ID,
		Name:           aux.Name,
		Slug:           aux.Slug,
		Status:         aux.Status,
		Price:          aux.Price,
		CompareAtPrice: aux.CompareAtPrice,

		DiscountAmount:        aux.DiscountAmount,
		DiscountType:          aux.DiscountType,
		DiscountStartDate:     aux.DiscountStartDate,
		DiscountEndDate:       aux.DiscountEndDate,
		DiscountTargetParents: aux.DiscountTargetParents,

		FlashSale: aux.FlashSale,

		FlashSalePrice:          aux.FlashSalePrice,
		FlashSaleDiscountAmount: aux.FlashSaleDiscountAmount,
		FlashSaleDiscountType:   aux.FlashSaleDiscountType,
		FlashSaleStartDate:      aux.FlashSaleStartDate,
		FlashSaleEndDate:        aux.FlashSaleEndDate,

		CategoryID:       aux.CategoryID,
		SubCategoryID:    aux.SubCategoryID,
		SubSubCategoryID: aux.SubSubCategoryID,

		Category:    aux.Category,
		SubCategory: aux.SubCategory,

		Variants: aux.Variants,
	}

	if p.SubCategory == nil {
		p.SubCategory = aux.SubCategoryCamel
	}

	p.SubSubCategory = decodeSubSubCategory(aux.SubSubCategoryRaw)
	if p.SubSubCategory == nil {
		p.SubSubCategory = decodeSubSubCategory(aux.SubSubCategoryCamel)
	}

	return nil
}

// decodeSubSubCategory accepts either a relation object or an array with a
// single element, which some list endpoints emit.
func decodeSubSubCategory(raw json.RawMessage) *SubSubCategory {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	if raw[0] == '[' {
		var arr []SubSubCategory
		if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
			return nil
		}
		return &arr[0]
	}

	var ssc SubSubCategory
	if err := json.Unmarshal(raw, &ssc); err != nil {
		return nil
	}
	return &ssc
}

// FindVariantByID returns the variant with the given ID, or nil.
func (p *Product) FindVariantByID(id ID) *ProductVariant {
	if p == nil || id.IsZero() {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].ID.String() == id.String() {
			return &p.Variants[i]
		}
	}
	return nil
}

// FindVariantBySlug returns the variant with the given slug, or nil.
func (p *Product) FindVariantBySlug(slug string) *ProductVariant {
	if p == nil || slug == "" {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].Slug == slug {
			return &p.Variants[i]
		}
	}
	return nil
}
