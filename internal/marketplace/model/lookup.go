package model

import (
	"reflect"
	"strings"
)

// itemFields maps the JSON key of every CanonicalItem field to its index.
var itemFields = func() map[string]int {
	t := reflect.TypeOf(CanonicalItem{})
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			out[name] = i
		}
	}
	return out
}()

// Lookup returns the value stored under a JSON field key such as "price" or
// "provider.name". Pointer fields are dereferenced; nil pointers report
// ok=false. Unknown keys report ok=false.
func (it CanonicalItem) Lookup(key string) (any, bool) {
	switch key {
	case "provider.name":
		return it.Provider.Name, true
	case "provider.logoUrl":
		return it.Provider.LogoURL, true
	}
	idx, ok := itemFields[key]
	if !ok {
		return nil, false
	}
	v := reflect.ValueOf(it).Field(idx)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	return v.Interface(), true
}

// HasField reports whether key names a CanonicalItem field.
func HasField(key string) bool {
	if key == "provider.name" || key == "provider.logoUrl" {
		return true
	}
	_, ok := itemFields[key]
	return ok
}
