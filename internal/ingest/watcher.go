package ingest

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher polls a Drive folder and ingests new exports on a fixed interval.
// Failed runs are logged and retried on the next tick.
type Watcher struct {
	service  *Service
	folderID string
	interval time.Duration
}

func NewWatcher(service *Service, folderID string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{service: service, folderID: folderID, interval: interval}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.service.IngestFolder(ctx, w.folderID)
			if err != nil {
				log.Error().Err(err).Str("folder", w.folderID).Msg("scheduled ingest failed")
				continue
			}
			if count > 0 {
				log.Info().Int("events", count).Msg("scheduled ingest complete")
			}
		}
	}
}
