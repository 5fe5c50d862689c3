package controller

import (
	"context"
	"time"

	"github.com/nao1215/reviewlens/internal/model"
	"golang.org/x/sync/errgroup"
)

// SubmitAll submits every input through the same controller, at most
// parallel at a time, and returns the outcomes in input order.
//
// With parallel greater than one the submits overlap like rapid repeated
// clicks: they share the page elements and nothing orders their
// completion. The only error returned is the context's; in that case the
// outcomes are incomplete and nil is returned in their place.
func (c *Controller) SubmitAll(ctx context.Context, inputs []string, parallel int) ([]model.Outcome, error) {
	if parallel < 1 {
		parallel = 1
	}

	c.logger.Info("starting batch submit",
		"total", len(inputs),
		"parallel", parallel,
	)
	startTime := time.Now()

	outcomes := make([]model.Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// Each goroutine writes only its own index.
			outcomes[i] = c.Submit(gctx, input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Info("batch submit complete",
		"total", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return outcomes, nil
}
