package emulator

import (
	"context"
	"time"
)

// limiter paces the frame loop. The ticker drops ticks for slow receivers,
// so a late frame does not cause a burst of catch-up frames.
type limiter struct {
	ticker *time.Ticker
}

func newLimiter(framesPerSecond int) *limiter {
	return &limiter{
		ticker: time.NewTicker(time.Second / time.Duration(framesPerSecond)),
	}
}

// wait blocks until the next frame is due or ctx is done.
func (lim *limiter) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-lim.ticker.C:
		return nil
	}
}

func (lim *limiter) stop() {
	lim.ticker.Stop()
}
