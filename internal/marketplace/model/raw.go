package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RawRecord is the closed set of upstream record shapes: *ProductRecord and
// *CourseRecord. Mappers switch on the concrete type.
type RawRecord interface {
	rawRecord()
}

// ProductRecord is the generic upstream product shape used by the financial,
// non-financial and knowledge-hub feeds. Almost everything of interest lives in
// the loosely typed CustomFields bag.
type ProductRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Slug         string   `json:"slug"`
	LogoURL      string   `json:"logoUrl"`
	CustomFields FieldBag `json:"customFields"`
}

// CourseRecord is the upstream course shape. It names its fields differently
// from ProductRecord and stores the schedule as an embedded JSON string.
type CourseRecord struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Provider   string   `json:"provider"`
	Properties FieldBag `json:"properties"`
}

func (*ProductRecord) rawRecord() {}
func (*CourseRecord) rawRecord()  {}

// FieldBag is a bag of loosely typed custom fields as decoded from JSON:
// strings, numbers, string arrays and arrays of objects.
type FieldBag map[string]any

// Value returns the raw value under key.
func (b FieldBag) Value(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b[key]
	return v, ok && v != nil
}

// Text returns the first non-blank scalar found under keys, trimmed. Numbers
// and booleans are rendered with their default formatting; the first non-blank
// string element of an array counts as a scalar.
func (b FieldBag) Text(keys ...string) string {
	for _, k := range keys {
		v, ok := b.Value(k)
		if !ok {
			continue
		}
		if s := scalarText(v); s != "" {
			return s
		}
		if arr, ok := v.([]any); ok {
			for _, el := range arr {
				if s := scalarText(el); s != "" {
					return s
				}
			}
		}
		if arr, ok := v.([]string); ok {
			for _, el := range arr {
				if s := strings.TrimSpace(el); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// Strings returns the string elements stored under key without splitting
// scalars. Object elements contribute their "name", "title", "value" or
// "label" member.
func (b FieldBag) Strings(key string) []string {
	v, ok := b.Value(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			s := scalarText(el)
			if s == "" {
				if obj, ok := el.(map[string]any); ok {
					s = FieldBag(obj).Text("name", "title", "value", "label")
				}
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Objects returns the object elements stored under key. A single object is
// returned as a one-element slice.
func (b FieldBag) Objects(key string) []FieldBag {
	v, ok := b.Value(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		return []FieldBag{t}
	case FieldBag:
		return []FieldBag{t}
	case []any:
		out := make([]FieldBag, 0, len(t))
		for _, el := range t {
			switch obj := el.(type) {
			case map[string]any:
				out = append(out, obj)
			case FieldBag:
				out = append(out, obj)
			}
		}
		return out
	case []map[string]any:
		out := make([]FieldBag, 0, len(t))
		for _, obj := range t {
			out = append(out, obj)
		}
		return out
	}
	return nil
}

// Number returns the numeric value under the first key that holds one.
// Numeric strings are accepted after removing thousands separators and any
// currency prefix or suffix.
func (b FieldBag) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := b.Value(k)
		if !ok {
			continue
		}
		if n, ok := ParseNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// ParseNumber converts a decoded JSON value into a float64.
func ParseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch {
			case r >= '0' && r <= '9', r == '.', r == '-', r == 'e', r == 'E', r == '+':
				return r
			}
			return -1
		}, stripCurrency(t))
		if cleaned == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// stripCurrency drops letters so that "AED 1,200" and "1,200 USD" parse, while
// keeping an exponent marker between digits.
func stripCurrency(s string) string {
	var out strings.Builder
	rs := []rune(strings.TrimSpace(s))
	for i, r := range rs {
		isExp := (r == 'e' || r == 'E') && i > 0 && i < len(rs)-1 &&
			isDigit(rs[i-1]) && (isDigit(rs[i+1]) || rs[i+1] == '-' || rs[i+1] == '+')
		if (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') && !isExp {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return fmt.Sprint(t)
	}
	return ""
}
