// Package logger provides a structured logging interface for siscraper.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors on stderr
// - Optional JSON output and file output
// - Global logger instance for easy access
//
// Diagnostics always go to stderr; stdout is reserved for the data
// reports, so piping report output stays clean.
//
// Basic Usage:
//
//	import "siscraper/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	log := logger.GetLogger()
//	log.Info("Run started")
//	log.WithField("date", "2024-01-01").Info("Fetching day")
//	log.WithError(err).Error("Fetch failed")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "scraper").
//	    WithField("run_id", runID)
//
//	// Use structured logging
//	log.InfoWithFields("Day fetch completed", map[string]interface{}{
//	    "date":   "2024-01-01",
//	    "points": 24,
//	})
//
// The logger supports the following configuration options:
// - Level: Log level (debug, info, warn, error, fatal, disabled)
// - Format: "console" (default) or "json"
// - File: Path to log file (empty for console only)
package logger
