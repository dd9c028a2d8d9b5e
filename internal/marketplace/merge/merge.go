// Package merge fills gaps in mapped items from a category's curated fallback item.
package merge

import (
	"reflect"
	"strings"

	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// protectedTag marks fields that always keep the mapped value.
const protectedTag = "mapped"

// Merge returns mapped with every empty field replaced by the fallback value.
// A field is empty when it is a nil pointer, interface, slice or map, an empty
// slice or map, or a whitespace-only string; zero numbers and false are
// values. Fields tagged merge:"mapped" (the provider) are never replaced.
// Eligibility is normalised after merging so fallback text is truncated the
// same way as mapped text. Neither argument is modified and the result shares
// no memory with them.
func Merge(mapped, fallback model.CanonicalItem) model.CanonicalItem {
	out := mapped.Clone()
	src := reflect.ValueOf(fallback.Clone())
	dst := reflect.ValueOf(&out).Elem()
	t := dst.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("merge") == protectedTag {
			continue
		}
		if IsEmpty(dst.Field(i).Interface()) {
			dst.Field(i).Set(src.Field(i))
		}
	}

	out.Eligibility = mapper.NormalizeEligibility(out.Eligibility)
	return out
}

// Resolve merges a mapped item with the fallback. A nil mapped item means the
// raw record was missing, so the fallback item is returned whole instead of a
// partial merge.
func Resolve(mapped *model.CanonicalItem, fallback model.CanonicalItem) model.CanonicalItem {
	if mapped == nil {
		logx.Debug().
			Str("component", "merge").
			Str("fallback_id", fallback.ID).
			Msg("record missing; using fallback item")
		out := fallback.Clone()
		out.Eligibility = mapper.NormalizeEligibility(out.Eligibility)
		return out
	}
	return Merge(*mapped, fallback)
}

// IsEmpty is the emptiness predicate used by Merge.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	}
	return false
}
