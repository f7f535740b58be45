package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"siscraper/pkg/series"
)

const dateLayout = "2006-01-02"

// Manager handles the per-day cache artifacts that memoize remote
// fetches across runs
type Manager struct {
	cacheDir string
	cached   map[string]bool
	mu       sync.RWMutex
}

// NewManager creates a cache manager rooted at cacheDir
func NewManager(cacheDir string) (*Manager, error) {
	// Create cache directory if it doesn't exist
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	manager := &Manager{
		cacheDir: cacheDir,
		cached:   make(map[string]bool),
	}

	// Scan existing artifacts so cached days are never re-fetched
	if err := manager.scanExistingArtifacts(); err != nil {
		return nil, fmt.Errorf("failed to scan existing artifacts: %w", err)
	}

	return manager, nil
}

// scanExistingArtifacts indexes artifacts already present in the cache
// directory (format: data_YYYY-MM-DD.csv)
func (m *Manager) scanExistingArtifacts() error {
	entries, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "data_") || filepath.Ext(name) != ".csv" {
			continue
		}
		key := strings.TrimSuffix(strings.TrimPrefix(name, "data_"), ".csv")
		m.cached[key] = true
	}

	return nil
}

// Path returns the artifact path for a date
func (m *Manager) Path(date time.Time) string {
	return filepath.Join(m.cacheDir, fmt.Sprintf("data_%s.csv", date.Format(dateLayout)))
}

// Has reports whether the artifact for a date already exists
func (m *Manager) Has(date time.Time) bool {
	key := date.Format(dateLayout)

	m.mu.RLock()
	hit := m.cached[key]
	m.mu.RUnlock()
	if hit {
		return true
	}

	// Fall back to the filesystem for artifacts created after the scan
	if _, err := os.Stat(m.Path(date)); err == nil {
		m.mu.Lock()
		m.cached[key] = true
		m.mu.Unlock()
		return true
	}

	return false
}

// WriteDay persists one day's rows as the artifact for that date.
// The write is atomic: a temp file in the cache directory is renamed
// into place, so a reader never sees a partial artifact.
func (m *Manager) WriteDay(date time.Time, points []series.Point) error {
	filename := m.Path(date)

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(p.Timestamp)
		sb.WriteByte(',')
		sb.WriteString(p.Value)
		sb.WriteByte('\n')
	}

	_, err = io.WriteString(out, sb.String())
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write artifact data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	// Atomic rename
	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.cached[date.Format(dateLayout)] = true
	m.mu.Unlock()

	return nil
}

// OpenDay opens the artifact for a date for reading
func (m *Manager) OpenDay(date time.Time) (io.ReadCloser, error) {
	f, err := os.Open(m.Path(date))
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}

// CacheDir returns the cache directory path
func (m *Manager) CacheDir() string {
	return m.cacheDir
}

// CachedCount returns the number of artifacts known to the manager
func (m *Manager) CachedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cached)
}
