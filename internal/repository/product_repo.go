package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

// ProductRepository handles database operations for the catalog
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.slug, p.status, p.price, p.compare_at_price,
	p.discount_amount, p.discount_type, p.discount_start_date, p.discount_end_date, p.discount_target_parents,
	p.flash_sale_price, p.flash_sale_discount_amount, p.flash_sale_discount_type,
	p.flash_sale_start_date, p.flash_sale_end_date,
	p.category_id, p.sub_category_id, p.sub_sub_category_id,
	c.id, c.name, c.slug, c.discount_amount, c.discount_type, c.discount_start_date, c.discount_end_date, c.discount_target_parents,
	sc.id, sc.name, sc.slug, sc.discount_amount, sc.discount_type, sc.discount_start_date, sc.discount_end_date, sc.discount_target_parents,
	ssc.id, ssc.name, ssc.slug, ssc.discount_amount, ssc.discount_type, ssc.discount_start_date, ssc.discount_end_date, ssc.discount_target_parents
`

const productJoins = `
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN sub_categories sc ON sc.id = p.sub_category_id
	LEFT JOIN sub_sub_categories ssc ON ssc.id = p.sub_sub_category_id
`

// GetPublished retrieves all published products with their category chain
// and variants (optionally filtered by category slug).
func (r *ProductRepository) GetPublished(ctx context.Context, categorySlug string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p` + productJoins + `
		WHERE p.status = 'published'
		ORDER BY p.name
	`
	args := []interface{}{}
	if categorySlug != "" {
		query = `
			SELECT ` + productColumns + `
			FROM products p` + productJoins + `
			WHERE p.status = 'published' AND LOWER(c.slug) = LOWER($1)
			ORDER BY p.name
		`
		args = append(args, categorySlug)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := r.attachVariants(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetBySlug retrieves a single product with its category chain and variants
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p` + productJoins + `
		WHERE p.slug = $1
	`

	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	rows.Close()

	list := []model.Product{*p}
	if err := r.attachVariants(ctx, list); err != nil {
		return nil, err
	}

	return &list[0], nil
}

// GetCategories retrieves all categories with their discount metadata
func (r *ProductRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, slug, discount_amount, discount_type,
		       discount_start_date, discount_end_date, discount_target_parents
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var (
			id      int64
			name    string
			slug    string
			amount  *float64
			dtype   *string
			start   *string
			end     *string
			targets *string
		)
		if err := rows.Scan(&id, &name, &slug, &amount, &dtype, &start, &end, &targets); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		c := model.Category{
			ID:   idFromInt(id),
			Name: name,
			Slug: slug,
		}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			amount, dtype, start, end, targets)
		categories = append(categories, c)
	}

	return categories, nil
}

// GetSubCategories retrieves all sub-categories with their discount metadata
func (r *ProductRepository) GetSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	query := `
		SELECT id, category_id, name, slug, discount_amount, discount_type,
		       discount_start_date, discount_end_date, discount_target_parents
		FROM sub_categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-categories: %w", err)
	}
	defer rows.Close()

	var subCategories []model.SubCategory
	for rows.Next() {
		var (
			id       int64
			parentID int64
			name     string
			slug     string
			amount   *float64
			dtype    *string
			start    *string
			end      *string
			targets  *string
		)
		if err := rows.Scan(&id, &parentID, &name, &slug, &amount, &dtype, &start, &end, &targets); err != nil {
			return nil, fmt.Errorf("failed to scan sub-category: %w", err)
		}

		c := model.SubCategory{
			ID:         idFromInt(id),
			CategoryID: idFromInt(parentID),
			Name:       name,
			Slug:       slug,
		}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			amount, dtype, start, end, targets)
		subCategories = append(subCategories, c)
	}

	return subCategories, nil
}

// GetSubSubCategories retrieves all sub-sub-categories with their discount metadata
func (r *ProductRepository) GetSubSubCategories(ctx context.Context) ([]model.SubSubCategory, error) {
	query := `
		SELECT id, sub_category_id, name, slug, discount_amount, discount_type,
		       discount_start_date, discount_end_date, discount_target_parents
		FROM sub_sub_categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-sub-categories: %w", err)
	}
	defer rows.Close()

	var subSubCategories []model.SubSubCategory
	for rows.Next() {
		var (
			id       int64
			parentID int64
			name     string
			slug     string
			amount   *float64
			dtype    *string
			start    *string
			end      *string
			targets  *string
		)
		if err := rows.Scan(&id, &parentID, &name, &slug, &amount, &dtype, &start, &end, &targets); err != nil {
			return nil, fmt.Errorf("failed to scan sub-sub-category: %w", err)
		}

		c := model.SubSubCategory{
			ID:            idFromInt(id),
			SubCategoryID: idFromInt(parentID),
			Name:          name,
			Slug:          slug,
		}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			amount, dtype, start, end, targets)
		subSubCategories = append(subSubCategories, c)
	}

	return subSubCategories, nil
}

// attachVariants loads the variants for every product in the slice
func (r *ProductRepository) attachVariants(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	index := make(map[string]*model.Product, len(products))
	ids := make([]int64, 0, len(products))
	for i := range products {
		id, err := strconv.ParseInt(products[i].ID.String(), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		index[products[i].ID.String()] = &products[i]
	}

	query := `
		SELECT product_id, id, slug, name, price, compare_at_price,
		       discount_amount, discount_type, discount_start_date, discount_end_date, discount_target_parents,
		       stock_quantity
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY product_id, id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			id        int64
			slug      string
			name      string
			price     *float64
			compareAt *float64
			amount    *float64
			dtype     *string
			start     *string
			end       *string
			targets   *string
			stock     *int64
		)
		if err := rows.Scan(&productID, &id, &slug, &name, &price, &compareAt,
			&amount, &dtype, &start, &end, &targets, &stock); err != nil {
			return fmt.Errorf("failed to scan variant: %w", err)
		}

		v := model.ProductVariant{
			ID:   idFromInt(id),
			Slug: slug,
			Name: name,
		}
		if price != nil {
			v.Price = model.NumberFrom(*price)
		}
		if compareAt != nil {
			v.CompareAtPrice = model.NumberFrom(*compareAt)
		}
		if stock != nil {
			v.StockQuantity = model.NumberFrom(float64(*stock))
		}
		fillDiscountFields(&v.DiscountAmount, &v.DiscountType, &v.DiscountStartDate, &v.DiscountEndDate, &v.DiscountTargetParents,
			amount, dtype, start, end, targets)

		if p, ok := index[strconv.FormatInt(productID, 10)]; ok {
			p.Variants = append(p.Variants, v)
		}
	}

	return nil
}

// scanProduct scans one joined row into a product with its relations
func scanProduct(rows pgx.Rows) (*model.Product, error) {
	var (
		id     int64
		name   string
		slug   string
		status string

		price     *float64
		compareAt *float64

		amount  *float64
		dtype   *string
		start   *string
		end     *string
		targets *string

		fsPrice  *float64
		fsAmount *float64
		fsType   *string
		fsStart  *string
		fsEnd    *string

		categoryID       *int64
		subCategoryID    *int64
		subSubCategoryID *int64

		cat    scannedCategory
		sub    scannedCategory
		subSub scannedCategory
	)

	err := rows.Scan(
		&id, &name, &slug, &status, &price, &compareAt,
		&amount, &dtype, &start, &end, &targets,
		&fsPrice, &fsAmount, &fsType, &fsStart, &fsEnd,
		&categoryID, &subCategoryID, &subSubCategoryID,
		&cat.id, &cat.name, &cat.slug, &cat.amount, &cat.dtype, &cat.start, &cat.end, &cat.targets,
		&sub.id, &sub.name, &sub.slug, &sub.amount, &sub.dtype, &sub.start, &sub.end, &sub.targets,
		&subSub.id, &subSub.name, &subSub.slug, &subSub.amount, &subSub.dtype, &subSub.start, &subSub.end, &subSub.targets,
	)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:     idFromInt(id),
		Name:   name,
		Slug:   slug,
		Status: status,
	}
	if price != nil {
		p.Price = model.NumberFrom(*price)
	}
	if compareAt != nil {
		p.CompareAtPrice = model.NumberFrom(*compareAt)
	}
	fillDiscountFields(&p.DiscountAmount, &p.DiscountType, &p.DiscountStartDate, &p.DiscountEndDate, &p.DiscountTargetParents,
		amount, dtype, start, end, targets)

	if fsPrice != nil {
		p.FlashSalePrice = model.NumberFrom(*fsPrice)
	}
	if fsAmount != nil {
		p.FlashSaleDiscountAmount = model.NumberFrom(*fsAmount)
	}
	if fsType != nil {
		p.FlashSaleDiscountType = *fsType
	}
	if fsStart != nil {
		p.FlashSaleStartDate = *fsStart
	}
	if fsEnd != nil {
		p.FlashSaleEndDate = *fsEnd
	}

	if categoryID != nil {
		p.CategoryID = idFromInt(*categoryID)
	}
	if subCategoryID != nil {
		p.SubCategoryID = idFromInt(*subCategoryID)
	}
	if subSubCategoryID != nil {
		p.SubSubCategoryID = idFromInt(*subSubCategoryID)
	}

	if cat.id != nil {
		c := model.Category{ID: idFromInt(*cat.id), Name: deref(cat.name), Slug: deref(cat.slug)}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			cat.amount, cat.dtype, cat.start, cat.end, cat.targets)
		p.Category = &c
	}
	if sub.id != nil {
		c := model.SubCategory{ID: idFromInt(*sub.id), Name: deref(sub.name), Slug: deref(sub.slug)}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			sub.amount, sub.dtype, sub.start, sub.end, sub.targets)
		p.SubCategory = &c
	}
	if subSub.id != nil {
		c := model.SubSubCategory{ID: idFromInt(*subSub.id), Name: deref(subSub.name), Slug: deref(subSub.slug)}
		fillDiscountFields(&c.DiscountAmount, &c.DiscountType, &c.DiscountStartDate, &c.DiscountEndDate, &c.DiscountTargetParents,
			subSub.amount, subSub.dtype, subSub.start, subSub.end, subSub.targets)
		p.SubSubCategory = &c
	}

	return p, nil
}

// scannedCategory holds the nullable columns of one joined category level
type scannedCategory struct {
	id      *int64
	name    *string
	slug    *string
	amount  *float64
	dtype   *string
	start   *string
	end     *string
	targets *string
}

// fillDiscountFields copies nullable discount columns into model fields.
// Target parents are stored in their legacy string form and parsed by the
// model's tokenizer.
func fillDiscountFields(amount *model.Number, dtype *string, start *string, end *string, targetList *model.TargetList,
	dbAmount *float64, dbType *string, dbStart *string, dbEnd *string, dbTargets *string) {

	if dbAmount != nil {
		*amount = model.NumberFrom(*dbAmount)
	}
	if dbType != nil {
		*dtype = *dbType
	}
	if dbStart != nil {
		*start = *dbStart
	}
	if dbEnd != nil {
		*end = *dbEnd
	}
	if dbTargets != nil {
		*targetList = model.SplitTargetTokens(*dbTargets)
	}
}

func idFromInt(id int64) model.ID {
	return model.IDFrom(strconv.FormatInt(id, 10))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
