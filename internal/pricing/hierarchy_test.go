package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-api/internal/model"
)

func TestProductParentIDsFromForeignKeys(t *testing.T) {
	p := &model.Product{
		CategoryID:       model.IDFrom("1"),
		SubCategoryID:    model.IDFrom("2"),
		SubSubCategoryID: model.IDFrom("3"),
	}

	ids := ProductParentIDs(p)
	assert.Equal(t, "1", ids.CategoryID)
	assert.Equal(t, "2", ids.SubCategoryID)
	assert.Equal(t, "3", ids.SubSubCategoryID)
}

func TestProductParentIDsFallBackToRelations(t *testing.T) {
	p := &model.Product{
		Category:       &model.Category{ID: model.IDFrom("7")},
		SubCategory:    &model.SubCategory{ID: model.IDFrom("8")},
		SubSubCategory: &model.SubSubCategory{ID: model.IDFrom("9")},
	}

	ids := ProductParentIDs(p)
	assert.Equal(t, "7", ids.CategoryID)
	assert.Equal(t, "8", ids.SubCategoryID)
	assert.Equal(t, "9", ids.SubSubCategoryID)
}

func TestProductParentIDsForeignKeyPreferred(t *testing.T) {
	p := &model.Product{
		CategoryID: model.IDFrom("1"),
		Category:   &model.Category{ID: model.IDFrom("7")},
	}

	assert.Equal(t, "1", ProductParentIDs(p).CategoryID)
}

func TestTokenSetContainsPrefixedVariants(t *testing.T) {
	ids := ParentIDs{CategoryID: "1", SubCategoryID: "2", SubSubCategoryID: "3"}
	set := ids.TokenSet()

	for _, token := range []string{
		"1", "cat_1", "category_1",
		"2", "sub_2", "subcat_2", "sub_category_2",
		"3", "subsub_3", "sub_sub_3", "sub_sub_category_3",
	} {
		_, ok := set[token]
		assert.True(t, ok, "missing token %q", token)
	}
}

func TestMatchesTargets(t *testing.T) {
	ids := ParentIDs{CategoryID: "1", SubCategoryID: "5", SubSubCategoryID: "9"}

	tests := []struct {
		name    string
		targets []string
		want    bool
	}{
		{"empty list applies universally", nil, true},
		{"bare category id", []string{"1"}, true},
		{"bare sub-category id", []string{"5"}, true},
		{"prefixed sub-category", []string{"sub_5"}, true},
		{"prefixed category", []string{"cat_1"}, true},
		{"long prefixed sub-sub-category", []string{"sub_sub_category_9"}, true},
		{"wrong sub-category", []string{"sub_6"}, false},
		{"prefix binds to its level", []string{"cat_5"}, false},
		{"all targets must match", []string{"sub_5", "cat_1"}, true},
		{"one mismatch fails the list", []string{"sub_5", "cat_2"}, false},
		{"empty token is a wildcard", []string{""}, true},
		{"whitespace trimmed", []string{"  sub_5 "}, true},
		{"case insensitive", []string{"SUB_5"}, true},
		{"unknown token", []string{"brand_5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids.MatchesTargets(tt.targets))
		})
	}
}

func TestMatchesTargetsAbsentLevel(t *testing.T) {
	ids := ParentIDs{CategoryID: "1"}

	assert.False(t, ids.MatchesTargets([]string{"sub_1"}))
	assert.False(t, ids.MatchesTargets([]string{"5"}))
	assert.True(t, ids.MatchesTargets([]string{"cat_1"}))
}
