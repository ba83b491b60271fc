package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDecoding(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{`12.5`, 12.5, true},
		{`"12.5"`, 12.5, true},
		{`" 99 "`, 99, true},
		{`0`, 0, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"free"`, 0, false},
		{`true`, 0, false},
		{`{}`, 0, false},
	}

	for _, tt := range tests {
		var n Number
		err := json.Unmarshal([]byte(tt.raw), &n)
		require.NoError(t, err, "raw=%s", tt.raw)

		got, ok := n.Float()
		assert.Equal(t, tt.valid, ok, "raw=%s", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%s", tt.raw)
	}
}

func TestBoolDecoding(t *testing.T) {
	tests := []struct {
		raw   string
		want  bool
		valid bool
	}{
		{`true`, true, true},
		{`false`, false, true},
		{`"true"`, true, true},
		{`"False"`, false, true},
		{`1`, true, true},
		{`0`, false, true},
		{`"1"`, true, true},
		{`null`, false, false},
		{`"maybe"`, false, false},
	}

	for _, tt := range tests {
		var b Bool
		err := json.Unmarshal([]byte(tt.raw), &b)
		require.NoError(t, err, "raw=%s", tt.raw)

		got, ok := b.Value()
		assert.Equal(t, tt.valid, ok, "raw=%s", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%s", tt.raw)
	}
}

func TestIDDecoding(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`5`, "5"},
		{`"5"`, "5"},
		{`" abc-7 "`, "abc-7"},
		{`12345678901`, "12345678901"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var id ID
		err := json.Unmarshal([]byte(tt.raw), &id)
		require.NoError(t, err, "raw=%s", tt.raw)
		assert.Equal(t, tt.want, id.String(), "raw=%s", tt.raw)
	}
}

func TestTargetListDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TargetList
	}{
		{"array of strings", `["sub_5","cat_1"]`, TargetList{"sub_5", "cat_1"}},
		{"array of numbers", `[5, 7]`, TargetList{"5", "7"}},
		{"json array as string", `"[\"sub_5\", \"7\"]"`, TargetList{"sub_5", "7"}},
		{"comma separated", `"sub_5, cat_1 ,  9"`, TargetList{"sub_5", "cat_1", "9"}},
		{"single token", `"sub_5"`, TargetList{"sub_5"}},
		{"empty entries dropped", `" , sub_5 ,,"`, TargetList{"sub_5"}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
		{"empty array", `[]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TargetList
			err := json.Unmarshal([]byte(tt.raw), &got)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductDecodingSnakeCaseRelations(t *testing.T) {
	raw := `{
		"id": 1,
		"name": "Shirt",
		"price": "49.90",
		"category_id": 2,
		"sub_category": {"id": 5, "discount_amount": 10, "discount_type": "percent"},
		"sub_sub_category": {"id": 9}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	price, ok := p.Price.Float()
	require.True(t, ok)
	assert.Equal(t, 49.90, price)
	assert.Equal(t, "2", p.CategoryID.String())
	require.NotNil(t, p.SubCategory)
	assert.Equal(t, "5", p.SubCategory.ID.String())
	require.NotNil(t, p.SubSubCategory)
	assert.Equal(t, "9", p.SubSubCategory.ID.String())
}

func TestProductDecodingCamelCaseRelations(t *testing.T) {
	raw := `{
		"id": 1,
		"subCategory": {"id": 5},
		"subSubCategory": {"id": 9}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.NotNil(t, p.SubCategory)
	assert.Equal(t, "5", p.SubCategory.ID.String())
	require.NotNil(t, p.SubSubCategory)
	assert.Equal(t, "9", p.SubSubCategory.ID.String())
}

func TestProductDecodingSubSubCategoryArrayOfOne(t *testing.T) {
	raw := `{"id": 1, "sub_sub_category": [{"id": 9, "discount_amount": "5"}]}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.NotNil(t, p.SubSubCategory)
	assert.Equal(t, "9", p.SubSubCategory.ID.String())

	raw = `{"id": 1, "sub_sub_category": []}`
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Nil(t, p.SubSubCategory)
}

func TestProductDecodingSnakePreferredOverCamel(t *testing.T) {
	raw := `{
		"id": 1,
		"sub_category": {"id": 5},
		"subCategory": {"id": 6}
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.NotNil(t, p.SubCategory)
	assert.Equal(t, "5", p.SubCategory.ID.String())
}

func TestProductDecodingFlashSaleShapes(t *testing.T) {
	raw := `{
		"id": 1,
		"price": 100,
		"flash_sale": {"sale_price": "79.90", "is_active": "true", "start_date": "2026-06-01"},
		"flash_sale_price": 85
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.NotNil(t, p.FlashSale)
	sale, ok := p.FlashSale.SalePrice.Float()
	require.True(t, ok)
	assert.Equal(t, 79.90, sale)
	active, ok := p.FlashSale.IsActive.Value()
	require.True(t, ok)
	assert.True(t, active)

	flat, ok := p.FlashSalePrice.Float()
	require.True(t, ok)
	assert.Equal(t, 85.0, flat)
}

func TestFindVariant(t *testing.T) {
	p := &Product{
		Variants: []ProductVariant{
			{ID: IDFrom("1"), Slug: "a"},
			{ID: IDFrom("2"), Slug: "b"},
		},
	}

	require.NotNil(t, p.FindVariantByID(IDFrom("2")))
	assert.Equal(t, "b", p.FindVariantByID(IDFrom("2")).Slug)
	assert.Nil(t, p.FindVariantByID(IDFrom("3")))
	assert.Nil(t, p.FindVariantByID(ID{}))

	require.NotNil(t, p.FindVariantBySlug("a"))
	assert.Nil(t, p.FindVariantBySlug(""))
	assert.Nil(t, p.FindVariantBySlug("c"))
}
