// Package retry provides bounded retry and readiness-polling helpers.
//
// Its main consumer is the chart fetcher: rendered pages expose their
// data asynchronously, so reads are retried at a constant interval
// until the data appears or a settle window closes.
//
// Features:
//   - Constant and exponential backoff strategies
//   - Attempt-count and total-elapsed bounds
//   - Context support for cancellation
//   - Configurable retry predicates wired to the error taxonomy
//
// Basic usage:
//
//	// Poll a readiness probe every 500ms for up to 15s
//	cfg := retry.PollConfig(500*time.Millisecond, 15*time.Second, log)
//	csv, err := retry.DoWithResult(ctx, func(ctx context.Context) (string, error) {
//		return readChartExport(ctx, session)
//	}, cfg)
//
//	// Bounded retry with exponential backoff
//	cfg := &retry.Config{
//		MaxAttempts: 3,
//		Backoff:     retry.DefaultExponentialBackoff(),
//		RetryIf:     retry.DefaultRetryIf,
//	}
//	err := retry.Do(ctx, operation, cfg)
//
// Error handling:
//
// DefaultRetryIf consults the error taxonomy: recoverable errors and
// plain probe errors are retried; fatal typed errors and context
// cancellation stop immediately.
package retry
