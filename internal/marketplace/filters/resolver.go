// Package filters computes the filter sidebar for a category: dependent option
// sets and selection state transitions.
package filters

import (
	"slices"

	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// Resolver resolves filter options for one category. It holds a private copy
// of the declared filters and is safe for concurrent use.
type Resolver struct {
	filters []model.FilterCategoryConfig
	dep     *model.FilterDependency
}

// NewResolver builds a resolver over the declared filters. dep may be nil, in
// which case every filter passes through unchanged.
func NewResolver(filters []model.FilterCategoryConfig, dep *model.FilterDependency) *Resolver {
	return &Resolver{
		filters: model.CloneFilters(filters),
		dep:     dep.Clone(),
	}
}

// ForCategory builds a resolver from a category configuration.
func ForCategory(cfg model.CategoryConfig) *Resolver {
	return NewResolver(cfg.Filters, cfg.Dependency)
}

// Filters returns the full declared filter list.
func (r *Resolver) Filters() []model.FilterCategoryConfig {
	return model.CloneFilters(r.filters)
}

// Resolve returns the filters to display for sel. The dependent child filter
// is narrowed to the declared options allowed by the union of the allow-lists
// of every selected parent value, in declared order; with no parent selection
// it keeps its full list. All other filters pass through.
func (r *Resolver) Resolve(sel model.Selection) []model.FilterCategoryConfig {
	out := model.CloneFilters(r.filters)
	allowed, active := r.allowedChild(sel)
	if !active {
		return out
	}
	for i, f := range out {
		if f.ID != r.dep.ChildID {
			continue
		}
		kept := make([]model.FilterOption, 0, len(f.Options))
		for _, o := range f.Options {
			if allowed[o.ID] {
				kept = append(kept, o)
			}
		}
		out[i].Options = kept
	}
	return out
}

// allowedChild returns the union of allow-lists for the selected parent
// values. active is false when no dependency applies or the parent selection
// is empty.
func (r *Resolver) allowedChild(sel model.Selection) (allowed map[string]bool, active bool) {
	if r.dep == nil {
		return nil, false
	}
	parent, ok := r.filter(r.dep.ParentID)
	if !ok {
		return nil, false
	}
	allowed = map[string]bool{}
	for _, v := range sel.Values(r.dep.ParentID) {
		if !parent.HasOption(v) {
			continue
		}
		active = true
		for _, child := range r.dep.AllowList[v] {
			allowed[child] = true
		}
	}
	return allowed, active
}

func (r *Resolver) filter(id string) (model.FilterCategoryConfig, bool) {
	for _, f := range r.filters {
		if f.ID == id {
			return f, true
		}
	}
	return model.FilterCategoryConfig{}, false
}

// Reconcile returns sel with every value that is not currently offered
// removed: undeclared filters and options, child values outside the parent's
// allow-lists, duplicates, and extra values on single-select filters.
func (r *Resolver) Reconcile(sel model.Selection) model.Selection {
	// the second pass re-resolves the child against the trimmed parent
	first, dropped := r.reconcileOnce(sel)
	out, more := r.reconcileOnce(first)
	if dropped += more; dropped > 0 {
		logx.Debug().
			Str("component", "filters").
			Int("dropped", dropped).
			Msg("selection reconciled")
	}
	return out
}

func (r *Resolver) reconcileOnce(sel model.Selection) (model.Selection, int) {
	resolved := r.Resolve(sel)
	out := make(model.Selection, len(sel))
	dropped := 0
	for _, f := range resolved {
		vals := sel.Values(f.ID)
		kept := make([]string, 0, len(vals))
		for _, v := range vals {
			if !f.HasOption(v) || slices.Contains(kept, v) || (!f.Multi && len(kept) == 1) {
				dropped++
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) > 0 {
			out[f.ID] = kept
		}
	}
	for id, vals := range sel {
		if _, ok := r.filter(id); !ok {
			dropped += len(vals)
		}
	}
	return out, dropped
}

// Validate reports child values that the parent selection no longer allows.
// Callers that prefer self-healing use Reconcile instead.
func (r *Resolver) Validate(sel model.Selection) error {
	if _, active := r.allowedChild(sel); !active {
		return nil
	}
	var child model.FilterCategoryConfig
	for _, f := range r.Resolve(sel) {
		if f.ID == r.dep.ChildID {
			child = f
		}
	}
	var invalid []string
	for _, v := range sel.Values(r.dep.ChildID) {
		if !child.HasOption(v) {
			invalid = append(invalid, v)
		}
	}
	if len(invalid) > 0 {
		return errx.InvalidFilterState(r.dep.ChildID, invalid)
	}
	return nil
}
