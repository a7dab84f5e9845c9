package polynorm

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NormalizeAll normalizes independent trees concurrently. Results keep the
// input order. Every goroutine builds its own accumulators, so no polynomial
// is shared between workers. Once ctx is done, running normalizations stop
// and the context error is returned.
func NormalizeAll(ctx context.Context, exprs []Expr) ([]*Polynomial, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	results := make([]*Polynomial, len(exprs))

	for i, e := range exprs {
		i, e := i, e
		g.Go(func() error {
			p, err := NormalizeContext(ctx, e, 0)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("normalizing %d expressions: %w", len(exprs), err)
	}
	return results, nil
}
