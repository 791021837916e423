package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Match plays game number i.
type Match func(ctx context.Context, i int) (Result, error)

// RunMatches plays n independent games, at most parallelism at once.
// Results are in game order; the first error cancels the remaining games.
func RunMatches(ctx context.Context, n, parallelism int, play Match) ([]Result, error) {
	results := make([]Result, n)
	g, gCtx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := play(gCtx, i)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
