package catalog

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	"github.com/sme-marketplace/server/internal/marketplace/catalog/observers"
	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/registry"
)

// Service runs raw records through the mapping and merge pipelines of their
// category. The pipelines are compiled once and are safe for concurrent use.
type Service struct {
	reg      *registry.Registry
	handlers []einocb.Handler

	detail  compose.Runnable[detailInput, model.CanonicalItem]
	list    compose.Runnable[listInput, []model.CanonicalItem]
	filters compose.Runnable[filtersInput, FiltersResult]
}

// NewService compiles the catalog pipelines over reg. Extra handlers are
// attached to every invocation next to the logging callbacks.
func NewService(ctx context.Context, reg *registry.Registry, handlers ...einocb.Handler) (*Service, error) {
	b := &pipelineBuilder{reg: reg}
	s := &Service{reg: reg, handlers: handlers}

	var err error
	if s.detail, err = b.buildDetail(ctx); err != nil {
		return nil, err
	}
	if s.list, err = b.buildList(ctx); err != nil {
		return nil, err
	}
	if s.filters, err = b.buildFilters(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Registry exposes the registry the service reads from.
func (s *Service) Registry() *registry.Registry {
	return s.reg
}

// Detail maps a raw record for a detail page and fills its gaps from the
// category fallback item. A nil or unusable record yields the fallback item.
func (s *Service) Detail(ctx context.Context, c model.Category, raw model.RawRecord) (model.CanonicalItem, error) {
	if _, err := s.reg.Get(c); err != nil {
		return model.CanonicalItem{}, err
	}
	return s.detail.Invoke(ctx, detailInput{Category: c, Raw: raw}, s.callbacks())
}

// List maps raw records for a listing. Records that cannot be mapped are
// skipped. When no record maps, the curated fallback list is returned.
func (s *Service) List(ctx context.Context, c model.Category, raws []model.RawRecord) ([]model.CanonicalItem, error) {
	if _, err := s.reg.Get(c); err != nil {
		return nil, err
	}
	return s.list.Invoke(ctx, listInput{Category: c, Raws: raws}, s.callbacks())
}

// Filters returns the filter sidebar for a selection. Upstream facets narrow
// the declared options first; the dependent resolver then narrows the child
// category. The returned selection is the reconciled form of sel.
func (s *Service) Filters(ctx context.Context, c model.Category, facets []mapper.Facet, sel model.Selection) ([]model.FilterCategoryConfig, model.Selection, error) {
	if _, err := s.reg.Get(c); err != nil {
		return nil, nil, err
	}
	out, err := s.filters.Invoke(ctx, filtersInput{Category: c, Facets: facets, Selection: sel}, s.callbacks())
	if err != nil {
		return nil, nil, err
	}
	return out.Filters, out.Selection, nil
}

func (s *Service) callbacks() compose.Option {
	return compose.WithCallbacks(append([]einocb.Handler{observers.NewPipelineCallbacks()}, s.handlers...)...)
}
