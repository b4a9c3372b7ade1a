// Package batch executes an async transform over an ordered collection with
// a hard cap on simultaneous in-flight operations, without reordering output.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Transform produces the result for one item. It must not panic and it
// returns no error: failure handling is owned by the transform itself, which
// is expected to fall back to a zero-valued result.
type Transform[T, R any] func(ctx context.Context, item T, index int) R

// Runner runs transforms over consecutive chunks of at most Limit items,
// waiting for each chunk to finish before starting the next. At most Limit
// transforms are outstanding at any instant, and results come back in input
// order regardless of completion order.
type Runner[T, R any] struct {
	// Limit is the maximum number of concurrently running transforms.
	// Values below 1 are clamped to 1.
	Limit int

	// OnItem, when set, is called once per item in input order as its
	// transform is launched, with the item's 1-based position.
	OnItem func(position int, item T)

	// OnChunk, when set, is called once as each chunk starts, with the
	// 0-based chunk index and the chunk size.
	OnChunk func(index, size int)
}

// Run applies the transform to every item. It returns exactly len(items)
// results, results[i] belonging to items[i]. An empty input returns an empty
// slice without invoking the transform. The only error Run itself produces
// is context cancellation, observed at chunk boundaries.
func (r *Runner[T, R]) Run(ctx context.Context, items []T, transform Transform[T, R]) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	limit := r.Limit
	if limit < 1 {
		limit = 1
	}

	chunk := 0
	for start := 0; start < len(items); start += limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+limit, len(items))
		if r.OnChunk != nil {
			r.OnChunk(chunk, end-start)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			if r.OnItem != nil {
				r.OnItem(i+1, items[i])
			}
			g.Go(func() error {
				results[i] = transform(gctx, items[i], i)
				return nil
			})
		}
		// Transforms never return errors; Wait is the chunk barrier.
		if err := g.Wait(); err != nil {
			return nil, err
		}
		chunk++
	}

	return results, nil
}
