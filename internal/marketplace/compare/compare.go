package compare

import (
	"fmt"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/merge"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/synth"
)

// NotAvailable is shown when neither the item nor the filler has a value.
const NotAvailable = "N/A"

// Column heads one compared item.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

// Cell is one rendered value. Synthetic marks placeholder content.
type Cell struct {
	Text      string `json:"text"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// Row is one attribute across every compared item.
type Row struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Table is the side-by-side comparison of up to MaxCompareItems items.
type Table struct {
	Category model.Category `json:"category"`
	Columns  []Column       `json:"columns"`
	Rows     []Row          `json:"rows"`
}

// Build lays out the attributes declared by cfg for items. Values missing
// from an item are requested from filler with the item id and attribute key,
// so the same item always shows the same placeholder. A nil filler uses the
// default generator.
func Build(cfg model.CategoryConfig, items []model.CanonicalItem, filler synth.Filler) (Table, error) {
	if len(items) > model.MaxCompareItems {
		return Table{}, errx.InvalidInput(fmt.Errorf("compare accepts at most %d items, got %d", model.MaxCompareItems, len(items)))
	}
	if filler == nil {
		filler = synth.Default()
	}

	t := Table{
		Category: cfg.ID,
		Columns:  make([]Column, len(items)),
		Rows:     make([]Row, 0, len(cfg.Attributes)),
	}
	for i, it := range items {
		t.Columns[i] = Column{ID: it.ID, Title: it.Title, Provider: it.Provider.Name}
	}
	for _, attr := range cfg.Attributes {
		format := FormatterFor(attr.Format)
		row := Row{Key: attr.Key, Label: attr.Label, Cells: make([]Cell, len(items))}
		for i, it := range items {
			row.Cells[i] = cell(it, attr.Key, format, filler)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func cell(it model.CanonicalItem, key string, format Formatter, filler synth.Filler) Cell {
	if v, ok := it.Lookup(key); ok && !merge.IsEmpty(v) {
		if s, ok := format(v, it); ok {
			return Cell{Text: s}
		}
	}
	if v, ok := filler.Fill(it.ID, key); ok {
		if s, ok := format(v, it); ok {
			return Cell{Text: s, Synthetic: true}
		}
	}
	return Cell{Text: NotAvailable}
}
