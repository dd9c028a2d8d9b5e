package model

import (
	"slices"
	"sort"
)

// Selection is the filter selection state: filter-category id to selected
// option ids. Single-select categories hold at most one value. A Selection is
// treated as a value; helpers return modified copies.
type Selection map[string][]string

// Values returns the selected option ids of a filter category.
func (s Selection) Values(filterID string) []string {
	return s[filterID]
}

// Has reports whether value is selected under filterID.
func (s Selection) Has(filterID, value string) bool {
	return slices.Contains(s[filterID], value)
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	for _, v := range s {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both selections select the same values, ignoring order
// and empty entries.
func (s Selection) Equal(other Selection) bool {
	return s.canonical().equal(other.canonical())
}

func (s Selection) canonical() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		if len(v) == 0 {
			continue
		}
		c := slices.Clone(v)
		sort.Strings(c)
		out[k] = slices.Compact(c)
	}
	return out
}

func (s Selection) equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if !slices.Equal(v, other[k]) {
			return false
		}
	}
	return true
}
