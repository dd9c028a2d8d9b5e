// Package synth produces stable placeholder values for comparison fields that
// live data does not provide. Values depend only on the item id and field key,
// so the same item shows the same value on every render and in every process.
package synth

import (
	"slices"
	"unicode/utf16"
)

// Filler supplies a display value for a field missing from an item.
type Filler interface {
	Fill(itemID, field string) (string, bool)
}

// FillerFunc adapts a function to Filler.
type FillerFunc func(itemID, field string) (string, bool)

func (f FillerFunc) Fill(itemID, field string) (string, bool) { return f(itemID, field) }

// Hash is the rolling string hash h = h*31 + c over the UTF-16 code units of
// seed in wrapping 32-bit signed arithmetic, made non-negative. It matches
// the hash browsers compute for the same seed.
func Hash(seed string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(c)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// Seed builds the seed for one field of one item.
func Seed(itemID, field string) string {
	return itemID + ":" + field
}

// Pick returns candidates[Hash(seed) mod len(candidates)]. ok is false when
// there are no candidates.
func Pick[T any](seed string, candidates []T) (v T, ok bool) {
	if len(candidates) == 0 {
		return v, false
	}
	return candidates[Hash(seed)%uint32(len(candidates))], true
}

// Generator is a Filler backed by per-field candidate lists.
type Generator struct {
	catalogs map[string][]string
}

// NewGenerator returns a generator over the given catalogs. The catalogs are copied.
func NewGenerator(catalogs map[string][]string) *Generator {
	g := &Generator{catalogs: make(map[string][]string, len(catalogs))}
	for k, v := range catalogs {
		g.catalogs[k] = slices.Clone(v)
	}
	return g
}

// Default returns a generator over DefaultCatalogs.
func Default() *Generator {
	return NewGenerator(DefaultCatalogs)
}

// Fill picks the value for field of itemID. Fields without a catalog report false.
func (g *Generator) Fill(itemID, field string) (string, bool) {
	return Pick(Seed(itemID, field), g.catalogs[field])
}

// Fields lists the fields the generator can fill, sorted.
func (g *Generator) Fields() []string {
	out := make([]string, 0, len(g.catalogs))
	for k := range g.catalogs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
