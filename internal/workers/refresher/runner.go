package refresher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sustaindash/internal/logging"
)

// Refresher re-issues the fetches for the current selection.
type Refresher interface {
	Refresh()
}

// Run calls target.Refresh every interval until ctx ends. It blocks; start it
// in its own goroutine.
func Run(ctx context.Context, target Refresher, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	log = logging.OrNop(log)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("refresher stopped", zap.Error(ctx.Err()))
			return
		case <-ticker.C:
			target.Refresh()
		}
	}
}
