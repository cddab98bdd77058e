// Package aggregate collects per-seed fetch results into one deduplicated
// list while tolerating individual failures.
//
// Seeds are processed sequentially in input order with a rate limiter
// between calls; the upstream APIs rate-limit aggressively enough that true
// concurrency is undesirable here. One seed failing never aborts the run or
// removes items already collected from other seeds.
package aggregate

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// DefaultRate is the per-second request budget between seed fetches.
const DefaultRate = 5.0

// Failure records one seed whose fetch failed.
type Failure[S any] struct {
	Seed S
	Err  error
}

// Result is the outcome of one aggregation run. Items holds no two elements
// with the same domain key and preserves first-encountered order; Failures
// holds one entry per failed seed.
type Result[S, T any] struct {
	Items    []T
	Failures []Failure[S]
}

// AllFailed reports whether every seed failed. The caller decides whether
// that is user-visible; it is not an error here.
func (r Result[S, T]) AllFailed(seedCount int) bool {
	return seedCount > 0 && len(r.Failures) == seedCount
}

// Collector runs throttled sequential aggregations.
type Collector[S, T any] struct {
	fetch   func(context.Context, S) ([]T, error)
	key     func(T) string
	limiter *rate.Limiter
	logger  *log.Logger
}

// New creates a Collector with the given per-seed fetch function and domain
// key extractor, throttled to [DefaultRate].
func New[S, T any](fetch func(context.Context, S) ([]T, error), key func(T) string, logger *log.Logger) *Collector[S, T] {
	return &Collector[S, T]{
		fetch:   fetch,
		key:     key,
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), 1),
		logger:  logger,
	}
}

// WithRate overrides the requests-per-second budget.
func (c *Collector[S, T]) WithRate(perSecond float64) *Collector[S, T] {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	return c
}

// Collect fetches every seed in order and merges the results.
//
// Duplicates are resolved first-seen-wins: a key returned by a later seed
// never replaces the item collected from an earlier one. An empty seed list
// returns immediately with no fetches. Context cancellation records the
// remaining seeds as failures rather than discarding collected items.
func (c *Collector[S, T]) Collect(ctx context.Context, seeds []S) Result[S, T] {
	result := Result[S, T]{Items: []T{}, Failures: []Failure[S]{}}
	if len(seeds) == 0 {
		return result
	}

	seen := make(map[string]struct{})

	for _, seed := range seeds {
		if err := c.limiter.Wait(ctx); err != nil {
			result.Failures = append(result.Failures, Failure[S]{Seed: seed, Err: err})
			continue
		}

		items, err := c.fetch(ctx, seed)
		if err != nil {
			c.logger.Warn("seed fetch failed", "seed", seed, "error", err)
			result.Failures = append(result.Failures, Failure[S]{Seed: seed, Err: err})
			continue
		}

		for _, item := range items {
			k := c.key(item)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			result.Items = append(result.Items, item)
		}
	}

	return result
}
