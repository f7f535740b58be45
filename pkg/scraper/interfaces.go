package scraper

import (
	"context"
	"time"

	"siscraper/pkg/series"
)

// DayFetcher retrieves the raw hourly rows for a single date
type DayFetcher interface {
	FetchDay(ctx context.Context, keywordID string, date time.Time) ([]series.Point, error)
}

// KeywordResolver maps a keyword to its remote identifier
type KeywordResolver interface {
	ResolveKeywordID(ctx context.Context, keyword string) (string, error)
}

// Progress receives a counter snapshot after each day of the walk.
// Optional; terminal progress displays hang off this.
type Progress interface {
	DayDone(date time.Time, stats Stats)
}

// ProgressFunc adapts a plain function to Progress
type ProgressFunc func(date time.Time, stats Stats)

func (f ProgressFunc) DayDone(date time.Time, stats Stats) { f(date, stats) }
