// Package storage provides the on-disk cache for per-day data artifacts.
//
// The storage package handles:
//   - Creating and managing the cache directory
//   - Writing day artifacts with atomic write operations
//   - Detecting already-fetched days across runs
//   - Thread-safe cache operations
//
// The Manager type is the primary interface for cache operations. It maintains
// an in-memory index of artifacts for fast lookups and provides atomic file
// writing to prevent corruption.
//
// Artifacts are named data_YYYY-MM-DD.csv and contain one timestamp,value
// pair per line. A day whose artifact exists is never fetched again; deleting
// the file is how a day gets re-fetched.
//
// Usage:
//
//	manager, err := storage.NewManager(cfg.CacheDir(keyword))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check whether the day was already fetched
//	if !manager.Has(date) {
//	    err = manager.WriteDay(date, points)
//	    if err != nil {
//	        log.Printf("Failed to write artifact: %v", err)
//	    }
//	}
package storage
