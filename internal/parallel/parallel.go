// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when a caller asks for zero or fewer
// workers.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Map runs fn over items on at most workers goroutines and returns the
// results in input order. fn must not share mutable state across calls;
// each call writes only its own result slot. The first error returned by
// fn cancels ctx for the remaining calls and is returned.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			r, err := fn(gctx, item)
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
	return results, nil
}

// Each is Map for functions that cannot fail.
func Each[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) []R {
	results, _ := Map(ctx, workers, items, func(ctx context.Context, item T) (R, error) {
		return fn(ctx, item), nil
	})
	return results
}
