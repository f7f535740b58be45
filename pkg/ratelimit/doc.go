// Package ratelimit paces remote requests against Social Insight.
//
// The remote side exposes no documented rate limits; the scraper keeps
// a fixed politeness pause before every navigation instead of an
// adaptive policy.
//
// Interface:
//
// Pacers implement the Limiter interface:
//   - Wait(ctx) error - Block for the pacing delay
//   - Interval() time.Duration - The configured delay
//
// Usage:
//
//	// Pause 2 seconds before each request
//	pacer := ratelimit.NewFixedInterval(2 * time.Second)
//
//	if err := pacer.Wait(ctx); err != nil {
//	    return err // context cancelled
//	}
//	// Proceed with request
package ratelimit
