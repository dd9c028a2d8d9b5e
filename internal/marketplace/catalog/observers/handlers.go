package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/sme-marketplace/server/pkg/logger"
)

type startKey struct{}

// NewPipelineCallbacks logs the lifecycle of catalog pipeline nodes and of
// the pipelines themselves. Attach it via compose.WithCallbacks(...).
func NewPipelineCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Lambda(newNodeHandler()).
		Graph(newPipelineHandler()).
		Handler()
}

func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			log := logx.Component("catalog_pipeline")
			log.Trace().Str("node", info.Name).Msg("node started")
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			log := logx.Component("catalog_pipeline")
			log.Trace().Str("node", info.Name).Msg("node finished")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			log := logx.Component("catalog_pipeline")
			log.Warn().Str("node", info.Name).Err(err).Msg("node failed")
			return ctx
		}).
		Build()
}

func newPipelineHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			return context.WithValue(ctx, startKey{}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			log := logx.Component("catalog_pipeline")
			ev := log.Debug().Str("pipeline", info.Name)
			if start, ok := ctx.Value(startKey{}).(time.Time); ok {
				ev = ev.Dur("elapsed", time.Since(start))
			}
			ev.Msg("pipeline finished")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			log := logx.Component("catalog_pipeline")
			log.Error().Str("pipeline", info.Name).Err(err).Msg("pipeline failed")
			return ctx
		}).
		Build()
}
