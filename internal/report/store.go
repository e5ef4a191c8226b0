package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vies_backend/platform/config"

	"github.com/google/uuid"
)

// Store keeps on-disk copies of generated reports for audit. Copies are
// transient: the cleanup worker removes them once they pass their TTL.
// With no directory configured the store is disabled and every Save is a no-op.
type Store struct {
	dir string
}

// NewStore creates a report store rooted at the configured directory.
func NewStore(cfg config.ReportConfig) *Store {
	return &Store{dir: strings.TrimSpace(cfg.GetReportsDir())}
}

// Enabled reports whether copies are being written at all.
func (s *Store) Enabled() bool {
	return s.dir != ""
}

// Save writes the PDF under a fresh UUID name and returns the full path.
func (s *Store) Save(pdf []byte) (string, error) {
	if !s.Enabled() {
		return "", nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write report copy: %w", err)
	}

	return path, nil
}

// DeleteOlderThan removes report copies whose modification time is before the
// cutoff and returns how many were deleted. Unreadable entries are skipped.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read reports dir: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}
