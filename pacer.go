package ghaudit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the minimum spacing between per-user detail fetches.
const DefaultDelay = 100 * time.Millisecond

// Pacer throttles per-user detail fetches to stay under the API rate limits.
type Pacer interface {
	// Wait blocks until the next fetch may proceed or ctx is done.
	Wait(ctx context.Context) error
}

// PacerFunc adapts a function to the Pacer interface.
type PacerFunc func(ctx context.Context) error

// Wait calls f(ctx).
func (f PacerFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// NoPacer never waits.
var NoPacer Pacer = PacerFunc(func(context.Context) error { return nil })

// RatePacer spaces fetches at a fixed interval. It is safe for concurrent use,
// so workers fanned out across users and organizations share one budget.
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer returns a pacer allowing one fetch per interval.
// A non-positive interval disables pacing.
func NewRatePacer(interval time.Duration) *RatePacer {
	if interval <= 0 {
		return &RatePacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the limiter grants the next fetch.
func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
