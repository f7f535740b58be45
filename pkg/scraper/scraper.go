package scraper

import (
	"context"
	"fmt"
	"time"

	errs "siscraper/pkg/errors"
	"siscraper/pkg/logger"
	"siscraper/pkg/ratelimit"
	"siscraper/pkg/series"
	"siscraper/pkg/storage"
)

// KeywordContext pins the keyword and its resolved remote identifier
// for one run. Resolved exactly once, read-only afterwards.
type KeywordContext struct {
	Keyword   string
	KeywordID string
}

// Stats counts what one acquisition run did
type Stats struct {
	DaysWalked    int
	CacheHits     int
	Fetches       int
	FetchFailures int
	PointsMerged  int
	MalformedRows int
}

// Scraper orchestrates the acquisition run: it walks the date range,
// fetches missing days through the day fetcher, and assembles every
// cached day into the merged series.
type Scraper struct {
	keyword  string
	dates    DateRange
	cache    *storage.Manager
	fetcher  DayFetcher
	resolver KeywordResolver
	pacer    ratelimit.Limiter
	logger   logger.Logger
	progress Progress

	resolved KeywordContext
}

// New creates a Scraper instance over its collaborators
func New(keyword string, dates DateRange, cache *storage.Manager, fetcher DayFetcher, resolver KeywordResolver, pacer ratelimit.Limiter, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Scraper{
		keyword:  keyword,
		dates:    dates,
		cache:    cache,
		fetcher:  fetcher,
		resolver: resolver,
		pacer:    pacer,
		logger:   log,
	}
}

// SetProgress registers a per-day progress sink for subsequent runs
func (s *Scraper) SetProgress(p Progress) {
	s.progress = p
}

// Run executes one acquisition over the configured range and returns
// the merged series. Per-date fetch failures are counted and logged
// but never abort the run; keyword resolution and cache I/O failures
// do.
func (s *Scraper) Run(ctx context.Context) (*series.Store, Stats, error) {
	var stats Stats

	keywordID, err := s.resolver.ResolveKeywordID(ctx, s.keyword)
	if err != nil {
		return nil, stats, err
	}
	kw := KeywordContext{Keyword: s.keyword, KeywordID: keywordID}
	s.resolved = kw

	days := s.dates.Days()
	s.logger.InfoWithFields("starting acquisition run", map[string]interface{}{
		"keyword":    kw.Keyword,
		"keyword_id": kw.KeywordID,
		"start":      s.dates.Start.Format(dateLayout),
		"end":        s.dates.End.Format(dateLayout),
		"days":       len(days),
	})

	store := series.NewStore()

	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		stats.DaysWalked++
		date := day.Format(dateLayout)

		if s.cache.Has(day) {
			stats.CacheHits++
			s.logger.InfoWithFields("cache hit, skipping fetch", map[string]interface{}{
				"date": date,
				"path": s.cache.Path(day),
			})
		} else {
			if err := s.pacer.Wait(ctx); err != nil {
				return nil, stats, err
			}

			stats.Fetches++
			points, err := s.fetcher.FetchDay(ctx, kw.KeywordID, day)
			if err != nil {
				stats.FetchFailures++
				s.logger.WithError(err).WithField("date", date).Error("day fetch failed")
				s.dayDone(day, stats)
				continue
			}

			if err := s.cache.WriteDay(day, points); err != nil {
				return nil, stats, errs.Wrap(err, errs.ErrorTypeCache,
					fmt.Sprintf("failed to persist artifact for %s", date))
			}

			s.logger.InfoWithFields("day fetch completed", map[string]interface{}{
				"date":   date,
				"points": len(points),
			})
		}

		points, parseStats, err := s.parseDay(day)
		if err != nil {
			return nil, stats, err
		}

		stats.MalformedRows += parseStats.Malformed
		if parseStats.Malformed > 0 {
			s.logger.WarnWithFields("malformed rows skipped", map[string]interface{}{
				"date":    date,
				"dropped": parseStats.Malformed,
			})
		}

		store.Merge(points)
		stats.PointsMerged += len(points)
		s.dayDone(day, stats)
	}

	s.logger.InfoWithFields("acquisition run completed", map[string]interface{}{
		"days":           stats.DaysWalked,
		"cache_hits":     stats.CacheHits,
		"fetches":        stats.Fetches,
		"fetch_failures": stats.FetchFailures,
		"points":         stats.PointsMerged,
		"malformed":      stats.MalformedRows,
	})

	return store, stats, nil
}

// KeywordContext returns the keyword and the identifier resolved by
// the most recent Run. Zero value before any run completes resolution.
func (s *Scraper) KeywordContext() KeywordContext {
	return s.resolved
}

func (s *Scraper) dayDone(day time.Time, stats Stats) {
	if s.progress != nil {
		s.progress.DayDone(day, stats)
	}
}

// parseDay reads one date's artifact back into points. A date whose
// fetch just failed has no artifact and contributes nothing; a read
// failure on an artifact that exists is fatal.
func (s *Scraper) parseDay(day time.Time) ([]series.Point, series.ParseStats, error) {
	if !s.cache.Has(day) {
		return nil, series.ParseStats{}, nil
	}

	f, err := s.cache.OpenDay(day)
	if err != nil {
		return nil, series.ParseStats{}, errs.Wrap(err, errs.ErrorTypeCache,
			fmt.Sprintf("failed to open artifact for %s", day.Format(dateLayout)))
	}
	defer f.Close()

	points, parseStats, err := series.ParseRecord(f)
	if err != nil {
		return nil, parseStats, errs.Wrap(err, errs.ErrorTypeCache,
			fmt.Sprintf("failed to read artifact for %s", day.Format(dateLayout)))
	}

	return points, parseStats, nil
}
