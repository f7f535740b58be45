package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"siscraper/pkg/series"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", value, err)
	}
	return d
}

func TestManager(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()

	// Create manager
	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	date := day(t, "2024-01-01")

	// Test initial state
	if manager.CachedCount() != 0 {
		t.Error("Expected initial cached count to be 0")
	}

	// Test Has for a date without an artifact
	if manager.Has(date) {
		t.Error("Expected Has to return false before any write")
	}

	// Test WriteDay
	points := []series.Point{
		{Timestamp: "2024-01-01T05", Value: "42"},
		{Timestamp: "2024-01-01T06", Value: "7"},
	}
	if err := manager.WriteDay(date, points); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	// Verify file was created with the expected name
	expectedPath := filepath.Join(tempDir, "data_2024-01-01.csv")
	if manager.Path(date) != expectedPath {
		t.Errorf("Expected path %q, got %q", expectedPath, manager.Path(date))
	}
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Error("Expected artifact file to be created")
	}

	// Verify file content
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	expected := "2024-01-01T05,42\n2024-01-01T06,7\n"
	if string(content) != expected {
		t.Errorf("Artifact content %q does not match expected %q", string(content), expected)
	}

	// Test Has for written artifact
	if !manager.Has(date) {
		t.Error("Expected Has to return true after write")
	}

	// Test cached count
	if manager.CachedCount() != 1 {
		t.Errorf("Expected cached count to be 1, got %d", manager.CachedCount())
	}

	// Test OpenDay round-trip
	r, err := manager.OpenDay(date)
	if err != nil {
		t.Fatalf("Failed to open artifact: %v", err)
	}
	readBack, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		t.Fatalf("Failed to read opened artifact: %v", err)
	}
	if string(readBack) != expected {
		t.Errorf("OpenDay content %q does not match expected %q", string(readBack), expected)
	}

	// Test scanning existing artifacts
	// Create another artifact manually, plus a stray file the scan must ignore
	manualFile := filepath.Join(tempDir, "data_2024-01-02.csv")
	if err := os.WriteFile(manualFile, []byte("2024-01-02T00,1\n"), 0644); err != nil {
		t.Fatalf("Failed to create manual artifact: %v", err)
	}
	strayFile := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(strayFile, []byte("stray"), 0644); err != nil {
		t.Fatalf("Failed to create stray file: %v", err)
	}

	// Create new manager to test scanning
	manager2, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create second manager: %v", err)
	}

	// Should detect both artifacts but not the stray file
	if manager2.CachedCount() != 2 {
		t.Errorf("Expected cached count to be 2 after scanning, got %d", manager2.CachedCount())
	}

	if !manager2.Has(day(t, "2024-01-02")) {
		t.Error("Expected manually created artifact to be detected")
	}
}

func TestManagerStatFallback(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	date := day(t, "2024-03-15")

	// Artifact appears on disk after the initial scan
	external := filepath.Join(tempDir, "data_2024-03-15.csv")
	if err := os.WriteFile(external, []byte("2024-03-15T12,3\n"), 0644); err != nil {
		t.Fatalf("Failed to create external artifact: %v", err)
	}

	if !manager.Has(date) {
		t.Error("Expected Has to fall back to the filesystem")
	}

	// Second call must be answered from the index
	if !manager.Has(date) {
		t.Error("Expected Has to remain true after fallback")
	}
	if manager.CachedCount() != 1 {
		t.Errorf("Expected cached count to be 1, got %d", manager.CachedCount())
	}
}

func TestWriteDayOverwrite(t *testing.T) {
	tempDir := t.TempDir()

	manager, err := NewManager(tempDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	date := day(t, "2024-06-01")

	if err := manager.WriteDay(date, []series.Point{{Timestamp: "2024-06-01T00", Value: "1"}}); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}
	if err := manager.WriteDay(date, []series.Point{{Timestamp: "2024-06-01T00", Value: "2"}}); err != nil {
		t.Fatalf("Failed to overwrite artifact: %v", err)
	}

	content, err := os.ReadFile(manager.Path(date))
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if string(content) != "2024-06-01T00,2\n" {
		t.Errorf("Expected overwritten content, got %q", string(content))
	}

	if manager.CachedCount() != 1 {
		t.Errorf("Expected cached count to stay 1, got %d", manager.CachedCount())
	}
}
