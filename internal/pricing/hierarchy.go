package pricing

import (
	"strings"

	"storefront-api/internal/model"
)

// ParentIDs is the product's category chain used for discount target
// matching. Absent levels are empty strings.
type ParentIDs struct {
	CategoryID       string
	SubCategoryID    string
	SubSubCategoryID string
}

// ProductParentIDs builds the category chain from a product's direct
// foreign keys, falling back to its resolved relation objects. Relation
// spellings and the array-of-one sub-sub-category shape are already
// normalized at the model boundary.
func ProductParentIDs(p *model.Product) ParentIDs {
	var ids ParentIDs
	if p == nil {
		return ids
	}

	ids.CategoryID = p.CategoryID.String()
	if ids.CategoryID == "" && p.Category != nil {
		ids.CategoryID = p.Category.ID.String()
	}

	ids.SubCategoryID = p.SubCategoryID.String()
	if ids.SubCategoryID == "" && p.SubCategory != nil {
		ids.SubCategoryID = p.SubCategory.ID.String()
	}

	ids.SubSubCategoryID = p.SubSubCategoryID.String()
	if ids.SubSubCategoryID == "" && p.SubSubCategory != nil {
		ids.SubSubCategoryID = p.SubSubCategory.ID.String()
	}

	return ids
}

// Prefixes recognized in target tokens, per hierarchy level. Legacy data
// mixes several spellings for the same level. Longest spelling first so
// "sub_category_7" strips to "7", not "category_7".
var (
	categoryPrefixes       = []string{"category_", "cat_"}
	subCategoryPrefixes    = []string{"sub_category_", "subcat_", "sub_"}
	subSubCategoryPrefixes = []string{"sub_sub_category_", "sub_sub_", "subsub_"}
)

// TokenSet returns every token that identifies this chain: for each present
// parent ID, the bare ID plus all prefixed spellings for its level.
func (ids ParentIDs) TokenSet() map[string]struct{} {
	set := make(map[string]struct{})

	add := func(id string, prefixes []string) {
		if id == "" {
			return
		}
		set[id] = struct{}{}
		for _, pfx := range prefixes {
			set[pfx+id] = struct{}{}
		}
	}

	add(ids.CategoryID, categoryPrefixes)
	add(ids.SubCategoryID, subCategoryPrefixes)
	add(ids.SubSubCategoryID, subSubCategoryPrefixes)

	return set
}

// MatchesTargets reports whether every target token in the list matches
// this chain. An empty list applies universally.
func (ids ParentIDs) MatchesTargets(targets []string) bool {
	if len(targets) == 0 {
		return true
	}

	set := ids.TokenSet()
	for _, target := range targets {
		if !ids.matchToken(target, set) {
			return false
		}
	}
	return true
}

// matchToken matches one target token: empty tokens are wildcards, then
// verbatim set membership, then a bare ID against any level, then a
// recognized prefix whose embedded ID must equal the corresponding parent.
func (ids ParentIDs) matchToken(target string, set map[string]struct{}) bool {
	token := strings.ToLower(strings.TrimSpace(target))
	if token == "" {
		return true
	}

	if _, ok := set[token]; ok {
		return true
	}

	if token == ids.CategoryID || token == ids.SubCategoryID || token == ids.SubSubCategoryID {
		return true
	}

	if id, ok := stripAnyPrefix(token, subSubCategoryPrefixes); ok {
		return id != "" && id == ids.SubSubCategoryID
	}
	if id, ok := stripAnyPrefix(token, subCategoryPrefixes); ok {
		return id != "" && id == ids.SubCategoryID
	}
	if id, ok := stripAnyPrefix(token, categoryPrefixes); ok {
		return id != "" && id == ids.CategoryID
	}

	return false
}

// stripAnyPrefix removes the first matching prefix. Longer prefixes are
// checked by the caller first (sub_sub_ before sub_) so a token is never
// claimed by the wrong level.
func stripAnyPrefix(token string, prefixes []string) (string, bool) {
	for _, pfx := range prefixes {
		if strings.HasPrefix(token, pfx) {
			return strings.TrimSpace(strings.TrimPrefix(token, pfx)), true
		}
	}
	return "", false
}
