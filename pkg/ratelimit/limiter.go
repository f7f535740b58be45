package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the interface for pacing remote requests
type Limiter interface {
	// Wait blocks for the pacing delay, or until ctx is cancelled
	Wait(ctx context.Context) error
	// Interval returns the configured pacing delay
	Interval() time.Duration
}

// FixedInterval pauses a fixed duration before every remote request
type FixedInterval struct {
	interval time.Duration
}

// NewFixedInterval creates a pacer with the given pause between requests.
// Negative intervals are treated as zero.
func NewFixedInterval(interval time.Duration) *FixedInterval {
	if interval < 0 {
		interval = 0
	}
	return &FixedInterval{interval: interval}
}

// Wait blocks for the full pacing interval. It returns early with the
// context error if ctx is cancelled first.
func (f *FixedInterval) Wait(ctx context.Context) error {
	if f.interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Interval returns the configured pause
func (f *FixedInterval) Interval() time.Duration {
	return f.interval
}
