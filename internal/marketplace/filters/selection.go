package filters

import (
	"slices"

	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// Op is a selection state transition.
type Op int

const (
	// Select selects Value. On a single-select filter it replaces the current value.
	Select Op = iota
	// Toggle selects Value, or deselects it when already selected.
	Toggle
	// Deselect removes Value.
	Deselect
	// Clear removes every value of the filter.
	Clear
	// ClearAll empties the whole selection.
	ClearAll
)

// Change describes one user interaction with the filter sidebar.
type Change struct {
	Op       Op
	FilterID string
	Value    string
}

// Apply returns the selection after ch. Child values that the new parent
// selection disallows are removed in the same step, so no returned selection
// ever holds an invalid child value. sel is not modified.
func (r *Resolver) Apply(sel model.Selection, ch Change) model.Selection {
	if ch.Op == ClearAll {
		return model.Selection{}
	}
	next := sel.Clone()
	f, ok := r.filter(ch.FilterID)
	if !ok {
		logx.Debug().
			Str("component", "filters").
			Str("filter", ch.FilterID).
			Msg("change for undeclared filter ignored")
		return r.Reconcile(next)
	}

	cur := next[f.ID]
	switch ch.Op {
	case Select:
		if f.Multi {
			if !next.Has(f.ID, ch.Value) {
				cur = append(cur, ch.Value)
			}
		} else {
			cur = []string{ch.Value}
		}
	case Toggle:
		if next.Has(f.ID, ch.Value) {
			cur = slices.DeleteFunc(cur, func(v string) bool { return v == ch.Value })
		} else if f.Multi {
			cur = append(cur, ch.Value)
		} else {
			cur = []string{ch.Value}
		}
	case Deselect:
		cur = slices.DeleteFunc(cur, func(v string) bool { return v == ch.Value })
	case Clear:
		cur = nil
	}
	if len(cur) == 0 {
		delete(next, f.ID)
	} else {
		next[f.ID] = cur
	}
	return r.Reconcile(next)
}
