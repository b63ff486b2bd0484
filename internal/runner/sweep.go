package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// SweepOptions configures RunSweep's concurrency and pacing.
type SweepOptions struct {
	// Concurrency bounds how many experiments run at once. Zero or
	// negative means unbounded, mirroring errgroup.Group's own
	// SetLimit(-1) convention.
	Concurrency int

	// RateLimiter, if set, is waited on once per event consumed across
	// every worker, for a caller replaying a stream faster than
	// logical time advances who wants to throttle CPU burn (spec.md §1
	// is explicit this module is not a wall-clock performance tool, so
	// this stays opt-in and nil by default).
	RateLimiter *rate.Limiter
}

// RunSweep runs every spec as an independent worker under an errgroup,
// each owning its own Model/View/Controller/Collector set (spec.md §5:
// "no cache, session, or collector is shared across workers"), and
// merges results only after each worker finishes. A failed experiment
// is recorded in its own Result slot and does not stop the sweep, per
// §7's propagation rule.
func (r *ExperimentRunner) RunSweep(ctx context.Context, specs []ExperimentSpec, opts SweepOptions) []Result {
	results := make([]Result, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if opts.RateLimiter != nil {
				spec.Events = rateLimitedSource{inner: spec.Events, ctx: gctx, limiter: opts.RateLimiter}
			}
			results[i] = r.Run(gctx, spec)
			return nil
		})
	}
	// Every worker's Go func always returns nil: per-experiment
	// failures are carried in Result.Err, not propagated as the
	// errgroup's own error, so a slow or failed experiment never
	// cancels its siblings.
	_ = g.Wait()
	return results
}

// rateLimitedSource waits on limiter before handing back each event,
// cancelling early if ctx is done.
type rateLimitedSource struct {
	inner   EventSource
	ctx     context.Context
	limiter *rate.Limiter
}

func (s rateLimitedSource) Next() (Event, bool) {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return Event{}, false
	}
	return s.inner.Next()
}
