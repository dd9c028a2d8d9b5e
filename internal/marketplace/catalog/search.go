package catalog

import (
	"strings"

	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
)

// Search returns the items whose title, description, provider name or tags
// contain every whitespace separated term of query, case-insensitively.
// An empty query matches everything.
func Search(items []model.CanonicalItem, query string) []model.CanonicalItem {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return items
	}

	var matched []model.CanonicalItem
	for _, it := range items {
		haystack := strings.ToLower(strings.Join(append([]string{
			it.Title,
			it.Description,
			it.Provider.Name,
			it.Category,
		}, it.Tags...), " "))

		ok := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, it)
		}
	}
	return matched
}

// Filter keeps the items that satisfy sel. Values inside one filter category
// are alternatives; categories are combined with AND. Filters absent from
// defs, or with no values selected, do not constrain.
func Filter(items []model.CanonicalItem, sel model.Selection, defs []model.FilterCategoryConfig) []model.CanonicalItem {
	if sel.Empty() {
		return items
	}
	var active []model.FilterCategoryConfig
	for _, f := range defs {
		if len(sel.Values(f.ID)) > 0 {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return items
	}

	var matched []model.CanonicalItem
	for _, it := range items {
		keep := true
		for _, f := range active {
			if !matches(it, f, sel.Values(f.ID)) {
				keep = false
				break
			}
		}
		if keep {
			matched = append(matched, it)
		}
	}
	return matched
}

func matches(it model.CanonicalItem, f model.FilterCategoryConfig, want []string) bool {
	raw, ok := it.Lookup(f.MatchField())
	if !ok {
		return false
	}
	var values []string
	switch v := raw.(type) {
	case string:
		values = []string{v}
	case []string:
		values = v
	default:
		return false
	}

	for _, optionID := range want {
		name := optionID
		for _, o := range f.Options {
			if o.ID == optionID {
				name = o.Name
				break
			}
		}
		for _, v := range values {
			if mapper.Slug(v) == optionID || strings.EqualFold(strings.TrimSpace(v), name) {
				return true
			}
		}
	}
	return false
}
