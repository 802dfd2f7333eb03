package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SweepInterval is how often the image store is scanned for expired files.
const SweepInterval = time.Hour

// CleanupWorker deletes generated images older than the retention window,
// keeping the local image store bounded. Generated content references
// images by timestamped filename, so anything past retention is a stale
// artifact no live session still links to.
type CleanupWorker struct {
	dir       string
	retention time.Duration
	log       zerolog.Logger
}

// NewCleanupWorker creates a CleanupWorker. A zero retention disables it.
func NewCleanupWorker(dir string, retention time.Duration, log zerolog.Logger) *CleanupWorker {
	return &CleanupWorker{
		dir:       dir,
		retention: retention,
		log:       log.With().Str("component", "cleanup_worker").Logger(),
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *CleanupWorker) Start(ctx context.Context) {
	if w.retention <= 0 {
		w.log.Info().Msg("image retention disabled")
		return
	}

	w.log.Info().Dur("retention", w.retention).Msg("CleanupWorker started")

	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("CleanupWorker stopped")
			return
		case <-ticker.C:
			removed, err := w.Sweep()
			if err != nil {
				w.log.Error().Err(err).Msg("sweep failed")
				continue
			}
			if removed > 0 {
				w.log.Info().Int("removed", removed).Msg("expired images removed")
			}
		}
	}
}

// Sweep deletes expired images and returns how many were removed.
func (w *CleanupWorker) Sweep() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-w.retention)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, entry.Name())); err != nil {
			w.log.Warn().Err(err).Str("file", entry.Name()).Msg("remove failed")
			continue
		}
		removed++
	}

	return removed, nil
}
