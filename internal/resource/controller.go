// Package resource implements admission control for the page buffer pool:
// a weighted semaphore bounding how many page reads run concurrently, and
// an optional token-bucket rate limiter bounding how many pages are read
// from disk per second. The executor's kNN task fan-out does not use it.
//
// Grounded on the teacher's resource/controller.go, which pairs
// golang.org/x/sync/semaphore.Weighted with golang.org/x/time/rate.Limiter
// for the same two concerns (concurrency cap, throughput cap) over ANN
// search requests; here the same pairing gates disk page reads instead.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Controller bounds concurrent resource usage and, optionally, a rate of
// consumption.
type Controller struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// New returns a Controller allowing up to maxConcurrent concurrent
// admissions. If ratePerSecond is > 0, admissions are additionally
// throttled to that rate; 0 disables rate limiting.
func New(maxConcurrent int64, ratePerSecond float64) *Controller {
	c := &Controller{sem: semaphore.NewWeighted(maxConcurrent)}
	if ratePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), int(ratePerSecond)+1)
	}
	return c
}

// Acquire blocks until a unit of the resource (weight 1) is available,
// respecting both the concurrency cap and, if configured, the rate limit.
// It returns ctx.Err() if ctx is cancelled first.
func (c *Controller) Acquire(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.sem.Release(1)
			return err
		}
	}
	return nil
}

// TryAcquire attempts a non-blocking admission, ignoring the rate limiter
// (a caller that can't block shouldn't be throttled by a rate it can't
// wait out).
func (c *Controller) TryAcquire() bool {
	return c.sem.TryAcquire(1)
}

// Release returns one unit of the resource.
func (c *Controller) Release() { c.sem.Release(1) }
