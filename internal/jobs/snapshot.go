package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"amplify/internal/export"
	"amplify/internal/repository"
	"amplify/internal/store"
)

// Snapshotter periodically writes the roster to a timestamped CSV file and,
// for file-backed stores, a copy of the whole store next to it.
type Snapshotter struct {
	roster   *repository.Influencers
	backup   store.FileCopier
	dir      string
	interval time.Duration
	now      func() time.Time
}

// NewSnapshotter creates a snapshot job writing into dir.
func NewSnapshotter(roster *repository.Influencers, dir string, interval time.Duration) *Snapshotter {
	return &Snapshotter{
		roster:   roster,
		dir:      dir,
		interval: interval,
		now:      time.Now,
	}
}

// WithStoreBackup makes every snapshot also copy st when it supports it.
// Stores that cannot copy themselves are ignored.
func (s *Snapshotter) WithStoreBackup(st store.Store) *Snapshotter {
	if fc, ok := st.(store.FileCopier); ok {
		s.backup = fc
	}
	return s
}

// Start begins the background snapshot loop and blocks until ctx is done.
func (s *Snapshotter) Start(ctx context.Context) {
	slog.Info("roster snapshots started", "dir", s.dir, "interval", s.interval)

	// Run immediately on start
	s.snapshot()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("roster snapshots stopped")
			return
		case <-ticker.C:
			s.snapshot()
		}
	}
}

func (s *Snapshotter) snapshot() {
	at := s.now().UTC()

	path, err := s.writeRoster(at)
	if err != nil {
		slog.Error("roster snapshot failed", "error", err)
	} else {
		slog.Info("roster snapshot written", "path", path)
	}

	if s.backup == nil {
		return
	}
	path, err = s.writeBackup(at)
	if err != nil {
		slog.Error("store backup failed", "error", err)
		return
	}
	slog.Info("store backup written", "path", path)
}

// WriteSnapshot writes the current roster and returns the file path.
func (s *Snapshotter) WriteSnapshot() (string, error) {
	return s.writeRoster(s.now().UTC())
}

// WriteBackup copies the store into the snapshot dir and returns the file
// path. It fails when the store cannot be copied.
func (s *Snapshotter) WriteBackup() (string, error) {
	if s.backup == nil {
		return "", fmt.Errorf("store does not support file backups")
	}
	return s.writeBackup(s.now().UTC())
}

func (s *Snapshotter) writeBackup(at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("store-%s.db", at.Format(stampLayout)))
	tmp := path + ".tmp"
	if err := s.backup.CopyFile(tmp); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to copy store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}
	return path, nil
}

const stampLayout = "20060102T150405Z"

func (s *Snapshotter) writeRoster(at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("roster-%s.csv", at.Format(stampLayout))
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(export.Influencers(s.roster.List())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize snapshot: %w", err)
	}
	return path, nil
}
