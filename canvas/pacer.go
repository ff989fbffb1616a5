package canvas

import (
	"context"

	"github.com/juju/errors"
	"golang.org/x/time/rate"
)

type pacer struct {
	limiter *rate.Limiter
}

// EnsureMaxFPS blocks until at least 1/fps has passed since the previous
// call let the caller through, so a render loop calling it once per frame
// runs at no more than fps frames per second. The first call never
// blocks. fps <= 0 disables pacing.
func (c *Canvas) EnsureMaxFPS(ctx context.Context, fps float64) error {
	if fps <= 0 {
		return nil
	}
	if c.pacer == nil {
		c.pacer = &pacer{limiter: rate.NewLimiter(rate.Limit(fps), 1)}
	} else if c.pacer.limiter.Limit() != rate.Limit(fps) {
		c.pacer.limiter.SetLimit(rate.Limit(fps))
	}
	return errors.Trace(c.pacer.limiter.Wait(ctx))
}

// Pace is EnsureMaxFPS with the MaxFPS the canvas was opened with.
func (c *Canvas) Pace(ctx context.Context) error {
	return c.EnsureMaxFPS(ctx, c.maxFPS)
}
