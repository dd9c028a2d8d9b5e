package mapper

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sme-marketplace/server/internal/marketplace/model"
)

// PlaceholderProviderName is used when a record names no provider. It is a
// real value as far as merging is concerned: fallback data never replaces it.
const PlaceholderProviderName = "Marketplace Partner"

// itemNamespace seeds the deterministic ids given to records without one.
var itemNamespace = uuid.MustParse("6f1c3b9e-2d4a-5e8f-9a1b-7c6d5e4f3a2b")

// Mapper converts raw upstream records of one category into canonical items.
// MapList and MapDetail return nil when the record is absent or is not the
// shape this category consumes; callers substitute the fallback item.
type Mapper interface {
	Category() model.Category
	MapList(raw model.RawRecord) *model.CanonicalItem
	MapDetail(raw model.RawRecord) *model.CanonicalItem
	MapFilters(facets []Facet, declared []model.FilterCategoryConfig) []model.FilterCategoryConfig
}

// Facet is an upstream aggregation of the values present for one filter.
type Facet struct {
	ID     string       `json:"id"`
	Values []FacetValue `json:"values"`
}

// FacetValue is one value of a facet.
type FacetValue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// New returns the mapping strategy for a category, or nil for an unknown one.
func New(category model.Category, cfg model.MapperConfig) Mapper {
	switch category {
	case model.Courses:
		return &CourseMapper{cfg: cfg}
	case model.Financial, model.NonFinancial:
		return &ProductMapper{category: category, cfg: cfg}
	case model.KnowledgeHub:
		return &ProductMapper{category: category, cfg: cfg, augmentList: true}
	}
	return nil
}

// StableID derives a deterministic id for a record that arrived without one.
func StableID(category model.Category, title string) string {
	key := category.String() + "|" + strings.ToLower(strings.TrimSpace(title))
	return uuid.NewSHA1(itemNamespace, []byte(key)).String()
}

// SynthesizeTags builds card tags from the classification fields of an item,
// keeping the first spelling of each tag.
func SynthesizeTags(item model.CanonicalItem) []string {
	var tags []string
	for _, v := range []string{item.Category, item.BusinessStage, item.ServiceType, item.MediaType, item.Format} {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := slices.ContainsFunc(tags, func(t string) bool { return strings.EqualFold(t, v) })
		if !dup {
			tags = append(tags, v)
		}
	}
	return tags
}

// Augment fills in synthesized tags on an item that carries none. It is the
// whole list mapping for categories whose list items are otherwise complete.
func Augment(item *model.CanonicalItem) *model.CanonicalItem {
	if item == nil || len(item.Tags) > 0 {
		return item
	}
	item.Tags = SynthesizeTags(*item)
	return item
}

// mapFilters keeps the declared option catalog authoritative: when upstream
// reports values for a filter, only declared options it reports survive, in
// declared order. Filters without a usable facet keep every declared option.
func mapFilters(facets []Facet, declared []model.FilterCategoryConfig) []model.FilterCategoryConfig {
	byID := make(map[string]Facet, len(facets))
	for _, f := range facets {
		byID[f.ID] = f
	}

	out := model.CloneFilters(declared)
	for i, fc := range out {
		facet, ok := byID[fc.ID]
		if !ok || len(facet.Values) == 0 {
			continue
		}
		present := make(map[string]bool, len(facet.Values))
		for _, v := range facet.Values {
			if v.Count < 0 {
				continue
			}
			for _, key := range []string{v.ID, Slug(v.Name)} {
				if key != "" {
					present[key] = true
				}
			}
		}
		kept := make([]model.FilterOption, 0, len(fc.Options))
		for _, o := range fc.Options {
			if present[o.ID] || present[Slug(o.Name)] {
				kept = append(kept, o)
			}
		}
		if len(kept) > 0 {
			out[i].Options = kept
		}
	}
	return out
}
