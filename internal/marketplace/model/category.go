package model

import "strings"

// Category identifies one of the marketplace verticals. The values are stable,
// URL-safe keys shared with the upstream query layer.
type Category string

const (
	Courses      Category = "courses"
	Financial    Category = "financial"
	NonFinancial Category = "non-financial"
	KnowledgeHub Category = "knowledge-hub"
)

// Categories is the full, ordered set of marketplace categories.
var Categories = []Category{
	Courses,
	Financial,
	NonFinancial,
	KnowledgeHub,
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts the canonical key as well as common route spellings
// ("non_financial", "knowledgehub", "Courses").
func ParseCategory(v string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(v))
	key = strings.ReplaceAll(key, "_", "-")
	switch key {
	case "knowledgehub":
		key = string(KnowledgeHub)
	case "nonfinancial":
		key = string(NonFinancial)
	}
	c := Category(key)
	return c, c.Valid()
}
