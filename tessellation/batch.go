package tessellation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"globemesh/core"
)

// ComputeAll tessellates every request on at most workers goroutines and
// returns the meshes in request order. Each request gets its own working
// state; the finished meshes are safe to hand to another goroutine. The
// first failure cancels requests that have not started yet. workers <= 0
// means no limit.
func ComputeAll(ctx context.Context, requests []Request, workers int) ([]*core.Mesh, error) {
	meshes := make([]*core.Mesh, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, r := range requests {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := Compute(r)
			if err != nil {
				return fmt.Errorf("request %d (%s): %w", i, r.Kind, err)
			}
			meshes[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
