package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LogRunStart logs the start of an acquisition run
func LogRunStart(runID, keyword, startDate, endDate string) {
	GetLogger().WithFields(map[string]interface{}{
		"run_id":     runID,
		"keyword":    keyword,
		"start_date": startDate,
		"end_date":   endDate,
	}).Info("Acquisition run started")
}

// LogCacheHit logs a date whose artifact already exists
func LogCacheHit(date, path string) {
	GetLogger().WithFields(map[string]interface{}{
		"date": date,
		"path": path,
	}).Info("Cache hit, skipping fetch")
}

// LogFetchSuccess logs a completed day fetch
func LogFetchSuccess(date string, points int) {
	GetLogger().WithFields(map[string]interface{}{
		"date":   date,
		"points": points,
	}).Info("Day fetch completed")
}

// LogFetchFailure logs a failed day fetch; the run continues without
// that date's contribution
func LogFetchFailure(date string, err error) {
	GetLogger().WithField("date", date).WithError(err).Error("Day fetch failed")
}

// LogMalformedRows logs rows dropped by the structured row check
func LogMalformedRows(source string, count int) {
	if count == 0 {
		return
	}
	GetLogger().WithFields(map[string]interface{}{
		"source":  source,
		"dropped": count,
	}).Warn("Malformed rows skipped")
}

// LogPacing logs the fixed pause taken before a remote request
func LogPacing(wait time.Duration) {
	GetLogger().WithField("wait", wait).Debug("Pacing before remote request")
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing (useful for testing)
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) Fatal(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) FatalWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
