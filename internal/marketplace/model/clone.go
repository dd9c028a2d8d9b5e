package model

import "slices"

// Clone returns a deep copy of the item.
func (it CanonicalItem) Clone() CanonicalItem {
	out := it
	out.Price = clonePtr(it.Price)
	out.Rating = clonePtr(it.Rating)
	out.ReviewCount = clonePtr(it.ReviewCount)
	out.Tags = slices.Clone(it.Tags)
	out.Details = slices.Clone(it.Details)
	out.Highlights = slices.Clone(it.Highlights)
	out.LearningOutcomes = slices.Clone(it.LearningOutcomes)
	out.SkillsGained = slices.Clone(it.SkillsGained)
	out.RequiredDocuments = slices.Clone(it.RequiredDocuments)
	out.ApplicationProcess = CloneSteps(it.ApplicationProcess)
	return out
}

// CloneSteps deep-copies a step list.
func CloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Cost = clonePtr(s.Cost)
		out[i] = s
	}
	return out
}

// Clone returns a deep copy of the filter category.
func (f FilterCategoryConfig) Clone() FilterCategoryConfig {
	f.Options = slices.Clone(f.Options)
	return f
}

// CloneFilters deep-copies a filter list.
func CloneFilters(fs []FilterCategoryConfig) []FilterCategoryConfig {
	if fs == nil {
		return nil
	}
	out := make([]FilterCategoryConfig, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}

// Clone returns a deep copy of the dependency.
func (d *FilterDependency) Clone() *FilterDependency {
	if d == nil {
		return nil
	}
	out := *d
	out.AllowList = make(map[string][]string, len(d.AllowList))
	for k, v := range d.AllowList {
		out.AllowList[k] = slices.Clone(v)
	}
	return &out
}

// Clone returns a deep copy of the configuration. The registry hands out
// clones so callers can never mutate the shared instance.
func (c CategoryConfig) Clone() CategoryConfig {
	out := c
	out.Attributes = slices.Clone(c.Attributes)
	out.Tabs = slices.Clone(c.Tabs)
	out.Filters = CloneFilters(c.Filters)
	out.Dependency = c.Dependency.Clone()
	out.Fallback.Item = c.Fallback.Item.Clone()
	if c.Fallback.Items != nil {
		out.Fallback.Items = make([]CanonicalItem, len(c.Fallback.Items))
		for i, it := range c.Fallback.Items {
			out.Fallback.Items[i] = it.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
