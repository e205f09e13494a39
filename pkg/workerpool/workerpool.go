// Package workerpool provides bounded concurrent processing helpers.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most workers goroutines and returns the results
// in input order. The first error cancels the remaining work and is returned.
func Map[T, R any](
	ctx context.Context,
	workers int,
	items []T,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// FirstFalse evaluates check over items concurrently and returns the lowest index for
// which it reported false, or -1 when every item passed.
func FirstFalse[T any](ctx context.Context, workers int, items []T, check func(T) bool) (int, error) {
	ok, err := Map(ctx, workers, items, func(_ context.Context, _ int, item T) (bool, error) {
		return check(item), nil
	})
	if err != nil {
		return -1, err
	}
	for i, passed := range ok {
		if !passed {
			return i, nil
		}
	}
	return -1, nil
}
