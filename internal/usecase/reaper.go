package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
)

type expirer interface {
	ReapExpired(ctx context.Context, olderThan time.Duration) (int, error)
}

// Reaper - periodically deletes games older than the session ttl.
type Reaper struct {
	logger   *slog.Logger
	expirer  expirer
	ttl      time.Duration
	interval time.Duration
}

func NewReaper(logger *slog.Logger, expirer expirer, ttl, interval time.Duration) *Reaper {
	return &Reaper{
		logger:   logger.With("component", "reaper"),
		expirer:  expirer,
		ttl:      ttl,
		interval: interval,
	}
}

// Run - blocks until ctx is done. A failed pass is logged and retried on the next tick.
func (that *Reaper) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("reaper started", "ttl", that.ttl, "interval", that.interval)

	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("reaper stopped")
			return
		case <-ticker.C:
			deleted, err := that.expirer.ReapExpired(ctx, that.ttl)
			metrics.GamesReaped.Add(float64(deleted))

			if err != nil {
				log.Error("failed to reap expired games", "error", err)
			}
		}
	}
}
