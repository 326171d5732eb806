// Package batch runs one goroutine per input item and joins them.
//
// Results are assembled by position, so output order always equals input
// order. The first failing item cancels the context shared by its siblings
// and is the only error returned; no partial result escapes.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item concurrently.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, i int, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]R, len(items))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
