package scraper

import (
	"time"

	errs "siscraper/pkg/errors"
)

const dateLayout = "2006-01-02"

// DateRange is the half-open interval [Start, End) an acquisition run
// walks. Both bounds are pinned to UTC midnight; End is exclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to UTC midnight and validates
// their order. Start == End is a valid empty range.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: midnight(start), End: midnight(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, errs.Newf(errs.ErrorTypeConfiguration,
			"start date %s is after end date %s",
			r.Start.Format(dateLayout), r.End.Format(dateLayout))
	}
	return r, nil
}

// ParseDateRange builds a range from two YYYY-MM-DD strings
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, errs.Newf(errs.ErrorTypeConfiguration,
			"invalid start date %q, expected YYYY-MM-DD", start)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, errs.Newf(errs.ErrorTypeConfiguration,
			"invalid end date %q, expected YYYY-MM-DD", end)
	}
	return NewDateRange(s, e)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days enumerates every date in the range in ascending order, one
// calendar day at a time
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days the range covers
func (r DateRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}
