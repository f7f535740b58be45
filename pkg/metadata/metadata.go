package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	errs "siscraper/pkg/errors"
	"siscraper/pkg/scraper"
	"siscraper/pkg/series"
)

const summaryFile = "run_summary.json"

// RunSummary records what one acquisition run did, persisted next to
// the day artifacts it produced.
type RunSummary struct {
	RunID     string `json:"run_id"`
	Keyword   string `json:"keyword"`
	KeywordID string `json:"keyword_id"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"` // exclusive

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`

	DaysWalked    int `json:"days_walked"`
	CacheHits     int `json:"cache_hits"`
	Fetches       int `json:"fetches"`
	FetchFailures int `json:"fetch_failures"`
	MalformedRows int `json:"malformed_rows"`
	PointsMerged  int `json:"points_merged"`

	PeriodCount int `json:"period_count"`
	MaxPeriod   int `json:"max_period"`
}

// NewRunSummary assembles the summary for a finished run. Each call
// mints a fresh run ID.
func NewRunSummary(kw scraper.KeywordContext, dates scraper.DateRange, startedAt, finishedAt time.Time, stats scraper.Stats, store *series.Store) *RunSummary {
	return &RunSummary{
		RunID:     uuid.NewString(),
		Keyword:   kw.Keyword,
		KeywordID: kw.KeywordID,

		StartDate: dates.Start.Format("2006-01-02"),
		EndDate:   dates.End.Format("2006-01-02"),

		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
		DurationMS: finishedAt.Sub(startedAt).Milliseconds(),

		DaysWalked:    stats.DaysWalked,
		CacheHits:     stats.CacheHits,
		Fetches:       stats.Fetches,
		FetchFailures: stats.FetchFailures,
		MalformedRows: stats.MalformedRows,
		PointsMerged:  stats.PointsMerged,

		PeriodCount: store.NumPeriods(),
		MaxPeriod:   store.MaxPeriod(),
	}
}

// SummaryPath returns where a cache directory's run summary lives
func SummaryPath(cacheDir string) string {
	return filepath.Join(cacheDir, summaryFile)
}

// Save writes the summary into the cache directory, replacing any
// summary a previous run left there. The write goes through a temp
// file and a rename so a crash never leaves a torn artifact.
func (s *RunSummary) Save(cacheDir string) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeCache, "failed to encode run summary")
	}
	data = append(data, '\n')

	path := SummaryPath(cacheDir)
	tmp, err := os.CreateTemp(cacheDir, summaryFile+".tmp-*")
	if err != nil {
		return "", errs.Wrap(err, errs.ErrorTypeCache, "failed to create run summary temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errs.Wrap(err, errs.ErrorTypeCache, "failed to write run summary")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errs.Wrap(err, errs.ErrorTypeCache, "failed to write run summary")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", errs.Wrap(err, errs.ErrorTypeCache, "failed to place run summary")
	}

	return path, nil
}

// Load reads the run summary back from a cache directory
func Load(cacheDir string) (*RunSummary, error) {
	data, err := os.ReadFile(SummaryPath(cacheDir))
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrorTypeCache, "failed to read run summary")
	}

	var s RunSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errs.Wrap(err, errs.ErrorTypeCache, "failed to decode run summary")
	}
	return &s, nil
}

// Duration returns the run duration as a time.Duration
func (s *RunSummary) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// String gives a one-line digest suitable for log output
func (s *RunSummary) String() string {
	return fmt.Sprintf("%s [%s, %s): %d days, %d hits, %d fetched, %d failed, %d points",
		s.Keyword, s.StartDate, s.EndDate,
		s.DaysWalked, s.CacheHits, s.Fetches, s.FetchFailures, s.PointsMerged)
}
