package document

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/adalundhe/layerkit/core/config"
)

// Failure records a document that could not be processed.
type Failure struct {
	Path       string
	Err        error
	Structural bool
}

// BatchResult summarizes a ProcessAll run. Failures keep input order.
type BatchResult struct {
	Processed int
	Failures  []Failure
}

// VisitFunc consumes a built document. Returning an error marks the document
// as failed without stopping the batch.
type VisitFunc func(ctx context.Context, doc *Document) error

// ProcessAll loads and visits every path, cfg.Batch.Concurrency documents at
// a time. Each document gets its own registry and resolver. Per-document
// failures are collected; only context cancellation aborts the batch.
func ProcessAll(ctx context.Context, paths []string, cfg *config.Config, logger *slog.Logger, visit VisitFunc) (*BatchResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	errs := make([]error, len(paths))
	var mu sync.Mutex
	processed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Batch.Concurrency, 1))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := Load(ctx, path, cfg, logger)
			if err == nil && visit != nil {
				err = visit(ctx, doc)
			}
			if err != nil {
				errs[i] = err
				logger.Warn("document failed",
					slog.String("source", path),
					slog.Bool("structural", IsStructural(err)),
					slog.String("error", err.Error()))
				return nil
			}

			mu.Lock()
			processed++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &BatchResult{Processed: processed}
	for i, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, Failure{
				Path:       paths[i],
				Err:        err,
				Structural: IsStructural(err),
			})
		}
	}
	return res, nil
}
