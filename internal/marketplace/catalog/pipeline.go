package catalog

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/sme-marketplace/server/internal/marketplace/filters"
	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/merge"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/registry"
	logx "github.com/sme-marketplace/server/pkg/logger"
)

// Pipeline and node names, as reported to callbacks.
const (
	PipelineDetail  = "detail"
	PipelineList    = "list"
	PipelineFilters = "filters"

	NodeMapDetail       = "map_detail"
	NodeMergeFallback   = "merge_fallback"
	NodeMapList         = "map_list"
	NodeCuratedFallback = "curated_fallback"
	NodeNarrowFilters   = "narrow_filters"
	NodeReconcile       = "reconcile_selection"
	NodeResolveFilters  = "resolve_filters"
)

// Every pipeline is a straight line of at most three nodes.
const maxRunSteps = 10

type detailInput struct {
	Category model.Category
	Raw      model.RawRecord
}

type detailState struct {
	Config model.CategoryConfig
	Mapped *model.CanonicalItem
}

type listInput struct {
	Category model.Category
	Raws     []model.RawRecord
}

type listState struct {
	Config  model.CategoryConfig
	Items   []model.CanonicalItem
	Skipped int
}

type filtersInput struct {
	Category  model.Category
	Facets    []mapper.Facet
	Selection model.Selection
}

type filtersState struct {
	Category  model.Category
	Resolver  *filters.Resolver
	Requested model.Selection
	Healed    model.Selection
}

// FiltersResult is the output of the filters pipeline.
type FiltersResult struct {
	Filters   []model.FilterCategoryConfig
	Selection model.Selection
}

// pipelineBuilder compiles the catalog pipelines over one registry.
type pipelineBuilder struct {
	reg *registry.Registry
}

func (b *pipelineBuilder) lookup(c model.Category) (model.CategoryConfig, mapper.Mapper, error) {
	cfg, err := b.reg.Get(c)
	if err != nil {
		return model.CategoryConfig{}, nil, err
	}
	m, err := b.reg.Mapper(c)
	if err != nil {
		return model.CategoryConfig{}, nil, err
	}
	return cfg, m, nil
}

func (b *pipelineBuilder) buildDetail(ctx context.Context) (compose.Runnable[detailInput, model.CanonicalItem], error) {
	g := compose.NewGraph[detailInput, model.CanonicalItem]()

	mapNode := compose.InvokableLambda(func(ctx context.Context, in detailInput) (detailState, error) {
		cfg, m, err := b.lookup(in.Category)
		if err != nil {
			return detailState{}, err
		}
		return detailState{Config: cfg, Mapped: m.MapDetail(in.Raw)}, nil
	})
	mergeNode := compose.InvokableLambda(func(ctx context.Context, st detailState) (model.CanonicalItem, error) {
		return merge.Resolve(st.Mapped, st.Config.Fallback.Item), nil
	})

	if err := g.AddLambdaNode(NodeMapDetail, mapNode, compose.WithNodeName(NodeMapDetail)); err != nil {
		return nil, err
	}
	if err := g.AddLambdaNode(NodeMergeFallback, mergeNode, compose.WithNodeName(NodeMergeFallback)); err != nil {
		return nil, err
	}
	if err := chain(g, NodeMapDetail, NodeMergeFallback); err != nil {
		return nil, err
	}
	return compile(ctx, g, PipelineDetail)
}

func (b *pipelineBuilder) buildList(ctx context.Context) (compose.Runnable[listInput, []model.CanonicalItem], error) {
	g := compose.NewGraph[listInput, []model.CanonicalItem]()

	mapNode := compose.InvokableLambda(func(ctx context.Context, in listInput) (listState, error) {
		cfg, m, err := b.lookup(in.Category)
		if err != nil {
			return listState{}, err
		}
		st := listState{Config: cfg, Items: make([]model.CanonicalItem, 0, len(in.Raws))}
		for _, raw := range in.Raws {
			if it := m.MapList(raw); it != nil {
				st.Items = append(st.Items, *it)
			}
		}
		st.Skipped = len(in.Raws) - len(st.Items)
		return st, nil
	})
	fallbackNode := compose.InvokableLambda(func(ctx context.Context, st listState) ([]model.CanonicalItem, error) {
		if st.Skipped > 0 {
			logx.Debug().Str("component", "catalog").Str("category", st.Config.ID.String()).Int("skipped", st.Skipped).Msg("records dropped during list mapping")
		}
		if len(st.Items) > 0 {
			return st.Items, nil
		}
		logx.Debug().Str("component", "catalog").Str("category", st.Config.ID.String()).Msg("no live items, serving curated list")
		items := make([]model.CanonicalItem, 0, len(st.Config.Fallback.Items))
		for _, it := range st.Config.Fallback.Items {
			items = append(items, it.Clone())
		}
		return items, nil
	})

	if err := g.AddLambdaNode(NodeMapList, mapNode, compose.WithNodeName(NodeMapList)); err != nil {
		return nil, err
	}
	if err := g.AddLambdaNode(NodeCuratedFallback, fallbackNode, compose.WithNodeName(NodeCuratedFallback)); err != nil {
		return nil, err
	}
	if err := chain(g, NodeMapList, NodeCuratedFallback); err != nil {
		return nil, err
	}
	return compile(ctx, g, PipelineList)
}

func (b *pipelineBuilder) buildFilters(ctx context.Context) (compose.Runnable[filtersInput, FiltersResult], error) {
	g := compose.NewGraph[filtersInput, FiltersResult]()

	// upstream facets narrow the declared options before the dependency applies
	narrowNode := compose.InvokableLambda(func(ctx context.Context, in filtersInput) (filtersState, error) {
		cfg, m, err := b.lookup(in.Category)
		if err != nil {
			return filtersState{}, err
		}
		r, err := b.reg.Resolver(in.Category)
		if err != nil {
			return filtersState{}, err
		}
		if len(in.Facets) > 0 {
			r = filters.NewResolver(m.MapFilters(in.Facets, r.Filters()), cfg.Dependency)
		}
		return filtersState{Category: in.Category, Resolver: r, Requested: in.Selection}, nil
	})
	reconcileNode := compose.InvokableLambda(func(ctx context.Context, st filtersState) (filtersState, error) {
		st.Healed = st.Resolver.Reconcile(st.Requested)
		if !st.Healed.Equal(st.Requested) {
			logx.Debug().Str("component", "catalog").Str("category", st.Category.String()).Msg("selection healed")
		}
		return st, nil
	})
	resolveNode := compose.InvokableLambda(func(ctx context.Context, st filtersState) (FiltersResult, error) {
		return FiltersResult{Filters: st.Resolver.Resolve(st.Healed), Selection: st.Healed}, nil
	})

	if err := g.AddLambdaNode(NodeNarrowFilters, narrowNode, compose.WithNodeName(NodeNarrowFilters)); err != nil {
		return nil, err
	}
	if err := g.AddLambdaNode(NodeReconcile, reconcileNode, compose.WithNodeName(NodeReconcile)); err != nil {
		return nil, err
	}
	if err := g.AddLambdaNode(NodeResolveFilters, resolveNode, compose.WithNodeName(NodeResolveFilters)); err != nil {
		return nil, err
	}
	if err := chain(g, NodeNarrowFilters, NodeReconcile, NodeResolveFilters); err != nil {
		return nil, err
	}
	return compile(ctx, g, PipelineFilters)
}

// chain wires START -> nodes... -> END.
func chain[I, O any](g *compose.Graph[I, O], nodes ...string) error {
	prev := compose.START
	for _, n := range append(nodes, compose.END) {
		if err := g.AddEdge(prev, n); err != nil {
			return fmt.Errorf("edge %s -> %s: %w", prev, n, err)
		}
		prev = n
	}
	return nil
}

func compile[I, O any](ctx context.Context, g *compose.Graph[I, O], name string) (compose.Runnable[I, O], error) {
	r, err := g.Compile(ctx, compose.WithGraphName(name), compose.WithMaxRunSteps(maxRunSteps))
	if err != nil {
		logx.Error().Err(err).Str("pipeline", name).Msg("failed to compile pipeline")
		return nil, fmt.Errorf("compile %s pipeline: %w", name, err)
	}
	return r, nil
}
