package merge

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/stretchr/testify/assert"
)

func fallbackItem() model.CanonicalItem {
	return model.CanonicalItem{
		ID:                "fallback",
		Title:             "Fallback title",
		Description:       "Curated description",
		Provider:          model.Provider{Name: "Curated Provider", LogoURL: "https://assets.test/curated.png"},
		Price:             model.Float(5000),
		Duration:          "12 months",
		Tags:              []string{"curated"},
		Details:           []string{"Detail A"},
		Eligibility:       "Registered SME; at least 1 year old",
		RequiredDocuments: []string{"Trade licence"},
		ApplicationProcess: []model.Step{
			{Title: "Submit", Cost: model.Float(100)},
		},
		Rating:      model.Float(4.2),
		ReviewCount: model.Int(30),
	}
}

func TestMergeProviderAlwaysFromMapped(t *testing.T) {
	placeholder := model.Provider{Name: mapper.PlaceholderProviderName}
	got := Merge(model.CanonicalItem{ID: "m", Provider: placeholder}, fallbackItem())
	assert.Equal(t, placeholder, got.Provider)

	empty := Merge(model.CanonicalItem{ID: "m"}, fallbackItem())
	assert.Equal(t, model.Provider{}, empty.Provider)
}

func TestMergeZeroPriceIsNotEmpty(t *testing.T) {
	got := Merge(model.CanonicalItem{ID: "m", Price: model.Float(0)}, fallbackItem())
	if assert.NotNil(t, got.Price) {
		assert.Equal(t, 0.0, *got.Price)
	}

	missing := Merge(model.CanonicalItem{ID: "m"}, fallbackItem())
	if assert.NotNil(t, missing.Price) {
		assert.Equal(t, 5000.0, *missing.Price)
	}
}

func TestMergeFieldwiseProperty(t *testing.T) {
	mapped := model.CanonicalItem{
		ID:          "m-1",
		Title:       "   ",
		Description: "Live description",
		Tags:        []string{},
		Details:     []string{"Live detail"},
		Rating:      model.Float(0),
	}
	fallback := fallbackItem()
	got := Merge(mapped, fallback)

	mv, fv, gv := reflect.ValueOf(mapped), reflect.ValueOf(fallback), reflect.ValueOf(got)
	typ := mv.Type()
	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Name
		if name == "Provider" || name == "Eligibility" {
			continue
		}
		want := mv.Field(i).Interface()
		if IsEmpty(want) {
			want = fv.Field(i).Interface()
		}
		if diff := cmp.Diff(want, gv.Field(i).Interface()); diff != "" {
			t.Errorf("field %s (-want +got):\n%s", name, diff)
		}
	}
}

func TestMergeReappliesEligibilityTruncation(t *testing.T) {
	fromFallback := Merge(model.CanonicalItem{ID: "m"}, fallbackItem())
	assert.Equal(t, "Registered SME", fromFallback.Eligibility)

	fromMapped := Merge(model.CanonicalItem{ID: "m", Eligibility: "Women-owned; any sector"}, fallbackItem())
	assert.Equal(t, "Women-owned", fromMapped.Eligibility)
}

func TestMergeDoesNotAlias(t *testing.T) {
	fallback := fallbackItem()
	got := Merge(model.CanonicalItem{ID: "m"}, fallback)

	got.Tags[0] = "changed"
	*got.Price = 1
	*got.ApplicationProcess[0].Cost = 1

	assert.Equal(t, "curated", fallback.Tags[0])
	assert.Equal(t, 5000.0, *fallback.Price)
	assert.Equal(t, 100.0, *fallback.ApplicationProcess[0].Cost)
}

func TestResolve(t *testing.T) {
	fallback := fallbackItem()

	whole := Resolve(nil, fallback)
	assert.Equal(t, "fallback", whole.ID)
	assert.Equal(t, "Curated Provider", whole.Provider.Name)
	assert.Equal(t, "Registered SME", whole.Eligibility)

	merged := Resolve(&model.CanonicalItem{ID: "live", Title: "Live"}, fallback)
	assert.Equal(t, "live", merged.ID)
	assert.Equal(t, "Live", merged.Title)
	assert.Equal(t, "Curated description", merged.Description)
}

func TestIsEmpty(t *testing.T) {
	var nilPtr *float64
	var nilSlice []string
	cases := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{nilPtr, true},
		{nilSlice, true},
		{[]string{}, true},
		{map[string]int{}, true},
		{"", true},
		{" \t\n", true},
		{"x", false},
		{0, false},
		{0.0, false},
		{model.Float(0), false},
		{false, false},
		{[]string{""}, false},
		{model.Provider{}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsEmpty(tc.v), "%#v", tc.v)
	}
}
