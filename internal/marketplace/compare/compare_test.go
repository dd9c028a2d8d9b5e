package compare

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = model.CategoryConfig{
	ID: model.NonFinancial,
	Attributes: []model.AttributeConfig{
		{Key: "provider.name", Label: "Provider"},
		{Key: "price", Label: "Price", Format: model.FormatCurrency},
		{Key: "rating", Label: "Rating", Format: model.FormatRating},
		{Key: "reviewCount", Label: "Reviews", Format: model.FormatCount},
		{Key: "requiredDocuments", Label: "Documents", Format: model.FormatList},
		{Key: "supportLevel", Label: "Support"},
	},
}

func stubFiller(values map[string]string) synth.Filler {
	return synth.FillerFunc(func(itemID, field string) (string, bool) {
		v, ok := values[synth.Seed(itemID, field)]
		return v, ok
	})
}

func TestBuildFormatsPresentValues(t *testing.T) {
	items := []model.CanonicalItem{{
		ID:                "a",
		Title:             "Setup Advisory",
		Provider:          model.Provider{Name: "Advisory Network"},
		Price:             model.Float(12500),
		Currency:          "AED",
		Rating:            model.Float(4.26),
		ReviewCount:       model.Int(1204),
		RequiredDocuments: []string{"Passport copy", " ", "Trade licence"},
	}}

	table, err := Build(cfg, items, stubFiller(map[string]string{"a:supportLevel": "Dedicated advisor"}))
	require.NoError(t, err)

	want := Table{
		Category: model.NonFinancial,
		Columns:  []Column{{ID: "a", Title: "Setup Advisory", Provider: "Advisory Network"}},
		Rows: []Row{
			{Key: "provider.name", Label: "Provider", Cells: []Cell{{Text: "Advisory Network"}}},
			{Key: "price", Label: "Price", Cells: []Cell{{Text: "AED 12,500"}}},
			{Key: "rating", Label: "Rating", Cells: []Cell{{Text: "4.3 / 5"}}},
			{Key: "reviewCount", Label: "Reviews", Cells: []Cell{{Text: "1,204"}}},
			{Key: "requiredDocuments", Label: "Documents", Cells: []Cell{{Text: "Passport copy, Trade licence"}}},
			{Key: "supportLevel", Label: "Support", Cells: []Cell{{Text: "Dedicated advisor", Synthetic: true}}},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildZeroPriceIsFree(t *testing.T) {
	table, err := Build(cfg, []model.CanonicalItem{{ID: "z", Price: model.Float(0)}}, stubFiller(nil))
	require.NoError(t, err)
	assert.Equal(t, Cell{Text: "Free"}, table.Rows[1].Cells[0])
}

func TestBuildFillsMissingValues(t *testing.T) {
	filler := stubFiller(map[string]string{
		"b:rating":      "4.5",
		"b:reviewCount": "73",
	})
	table, err := Build(cfg, []model.CanonicalItem{{ID: "b", Title: "Bare"}}, filler)
	require.NoError(t, err)

	assert.Equal(t, Cell{Text: "4.5 / 5", Synthetic: true}, table.Rows[2].Cells[0])
	assert.Equal(t, Cell{Text: "73", Synthetic: true}, table.Rows[3].Cells[0])
	assert.Equal(t, Cell{Text: NotAvailable}, table.Rows[4].Cells[0])
}

func TestBuildIsDeterministic(t *testing.T) {
	items := []model.CanonicalItem{{ID: "svc-1"}, {ID: "svc-2"}, {ID: "svc-3"}}
	first, err := Build(cfg, items, nil)
	require.NoError(t, err)
	second, err := Build(cfg, items, synth.Default())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))

	support := synth.DefaultCatalogs["supportLevel"]
	for i, it := range items {
		want, ok := synth.Pick(synth.Seed(it.ID, "supportLevel"), support)
		require.True(t, ok)
		assert.Equal(t, Cell{Text: want, Synthetic: true}, first.Rows[5].Cells[i])
	}
}

func TestBuildRejectsTooManyItems(t *testing.T) {
	items := make([]model.CanonicalItem, model.MaxCompareItems+1)
	_, err := Build(cfg, items, nil)
	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestFormatterFor(t *testing.T) {
	item := model.CanonicalItem{Currency: "USD"}
	tests := []struct {
		format string
		in     any
		want   string
		ok     bool
	}{
		{model.FormatCurrency, 1234.5, "USD 1,234.5", true},
		{model.FormatCurrency, "On request", "On request", true},
		{model.FormatRating, 5.0, "5.0 / 5", true},
		{model.FormatRating, "n/a", "n/a", true},
		{model.FormatCount, 7, "7", true},
		{model.FormatList, []string{}, "", false},
		{model.FormatDuration, " 6 weeks ", "6 weeks", true},
		{"", []model.Step{{Title: "Apply"}, {Title: "Review"}}, "Apply, Review", true},
		{"bogus", "  ", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatterFor(tt.format)(tt.in, item)
		assert.Equal(t, tt.ok, ok, "%s %v", tt.format, tt.in)
		assert.Equal(t, tt.want, got, "%s %v", tt.format, tt.in)
	}
}
