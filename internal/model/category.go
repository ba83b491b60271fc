package model

// Category is a top-level catalog category. Categories at every level may
// carry their own time-boxed discount, optionally restricted to specific
// parents via DiscountTargetParents.
type Category struct {
	ID                    ID         `json:"id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`
}

// SubCategory is a second-level category.
type SubCategory struct {
	ID                    ID         `json:"id"`
	CategoryID            ID         `json:"category_id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`
}

// SubSubCategory is a third-level category.
type SubSubCategory struct {
	ID                    ID         `json:"id"`
	SubCategoryID         ID         `json:"sub_category_id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	DiscountAmount        Number     `json:"discount_amount"`
	DiscountType          string     `json:"discount_type"`
	DiscountStartDate     string     `json:"discount_start_date"`
	DiscountEndDate       string     `json:"discount_end_date"`
	DiscountTargetParents TargetList `json:"discount_target_parents"`
}
