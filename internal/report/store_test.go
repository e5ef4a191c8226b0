package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testReportConfig struct {
	dir string
	ttl time.Duration
}

func (c testReportConfig) GetReportsDir() string        { return c.dir }
func (c testReportConfig) GetReportTTL() time.Duration  { return c.ttl }

func TestStore_DisabledWithoutDir(t *testing.T) {
	store := NewStore(testReportConfig{})
	if store.Enabled() {
		t.Fatalf("store should be disabled without a directory")
	}
	path, err := store.Save([]byte("pdf"))
	if err != nil || path != "" {
		t.Fatalf("disabled store Save should be a no-op, got %q, %v", path, err)
	}
}

func TestStore_SaveAndCleanup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(testReportConfig{dir: dir, ttl: time.Hour})

	path, err := store.Save([]byte("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("copy written outside reports dir: %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved copy missing: %v", err)
	}

	// Nothing is old enough yet.
	deleted, err := store.DeleteOlderThan(time.Now().Add(-time.Minute))
	if err != nil || deleted != 0 {
		t.Fatalf("expected no deletions, got %d, %v", deleted, err)
	}

	// Everything is older than a future cutoff.
	deleted, err = store.DeleteOlderThan(time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected cleanup error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("copy should be gone after cleanup")
	}
}

func TestStore_CleanupIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(testReportConfig{dir: dir, ttl: time.Hour})

	foreign := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	deleted, err := store.DeleteOlderThan(time.Now().Add(time.Minute))
	if err != nil || deleted != 0 {
		t.Fatalf("expected foreign files untouched, got %d, %v", deleted, err)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Fatalf("foreign file was removed: %v", err)
	}
}
