package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler and good enough for most cases.
type TickerLimiter struct {
	frameTime time.Duration
	ticker    *time.Ticker
}

func NewTickerLimiter(fps float64) *TickerLimiter {
	frameTime := FrameDuration(fps)
	return &TickerLimiter{
		frameTime: frameTime,
		ticker:    time.NewTicker(frameTime),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.frameTime)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
