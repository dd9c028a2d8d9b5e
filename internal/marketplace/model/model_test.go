package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"courses", Courses, true},
		{" Financial ", Financial, true},
		{"non_financial", NonFinancial, true},
		{"nonfinancial", NonFinancial, true},
		{"knowledgehub", KnowledgeHub, true},
		{"knowledge-hub", KnowledgeHub, true},
		{"jobs", Category("jobs"), false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseCategory(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFieldBagDecodedFromJSON(t *testing.T) {
	var rec ProductRecord
	raw := `{
		"id": "p-1",
		"customFields": {
			"Eligibility": ["", "  Registered SME  "],
			"Amount": "AED 25,000",
			"Zero": 0,
			"Logo": [{"source": "/logos/bank.png"}],
			"Documents": [{"name": "Trade licence"}, "Passport copy", 7],
			"Blank": "   "
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	bag := rec.CustomFields
	assert.Equal(t, "Registered SME", bag.Text("Eligibility"))
	assert.Equal(t, "", bag.Text("Blank", "Missing"))

	n, ok := bag.Number("Amount")
	require.True(t, ok)
	assert.Equal(t, 25000.0, n)

	zero, ok := bag.Number("Zero")
	require.True(t, ok)
	assert.Equal(t, 0.0, zero)

	assert.Equal(t, []string{"Trade licence", "Passport copy", "7"}, bag.Strings("Documents"))
	require.Len(t, bag.Objects("Logo"), 1)
	assert.Equal(t, "/logos/bank.png", bag.Objects("Logo")[0].Text("source"))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{"1,500", 1500, true},
		{"1500 USD", 1500, true},
		{"1.5e3", 1500, true},
		{"free", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{[]any{1}, 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}

func TestLookup(t *testing.T) {
	item := CanonicalItem{
		ID:       "x",
		Price:    Float(0),
		Provider: Provider{Name: "Emirates Development Bank"},
		Tags:     []string{"loan"},
	}

	price, ok := item.Lookup("price")
	require.True(t, ok)
	assert.Equal(t, 0.0, price)

	_, ok = item.Lookup("rating")
	assert.False(t, ok, "nil pointer is absent")

	name, ok := item.Lookup("provider.name")
	require.True(t, ok)
	assert.Equal(t, "Emirates Development Bank", name)

	tags, ok := item.Lookup("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"loan"}, tags)

	_, ok = item.Lookup("nope")
	assert.False(t, ok)
	assert.True(t, HasField("reviewCount"))
	assert.False(t, HasField("nope"))
}

func TestCloneIsIndependent(t *testing.T) {
	orig := CategoryConfig{
		ID:      Financial,
		Filters: []FilterCategoryConfig{{ID: "a", Options: []FilterOption{{ID: "x"}}}},
		Dependency: &FilterDependency{
			ParentID:  "a",
			ChildID:   "b",
			AllowList: map[string][]string{"x": {"y"}},
		},
		Fallback: FallbackDataset{Item: CanonicalItem{Tags: []string{"t"}, Price: Float(1)}},
	}
	cp := orig.Clone()
	cp.Filters[0].Options[0].ID = "changed"
	cp.Dependency.AllowList["x"][0] = "changed"
	cp.Fallback.Item.Tags[0] = "changed"
	*cp.Fallback.Item.Price = 9

	assert.Equal(t, "x", orig.Filters[0].Options[0].ID)
	assert.Equal(t, "y", orig.Dependency.AllowList["x"][0])
	assert.Equal(t, "t", orig.Fallback.Item.Tags[0])
	assert.Equal(t, 1.0, *orig.Fallback.Item.Price)
}

func TestSelectionEqual(t *testing.T) {
	a := Selection{"mediaType": {"video", "article"}, "format": nil}
	b := Selection{"mediaType": {"article", "video"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Selection{"mediaType": {"video"}}))
	assert.True(t, Selection{"x": {}}.Empty())
	assert.True(t, a.Has("mediaType", "video"))
}
