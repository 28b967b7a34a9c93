package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// Reclaimer releases tasks whose claim outlived the TTL. It is the
// crash recovery half of at-least-once delivery. A process that died between
// claiming and acknowledging leaves its tasks in 'claimed'; once the
// TTL passes they return to 'pending' and a live poller redelivers
// them. The executor's fire-time re-validation makes the second run
// safe.
type Reclaimer struct {
	store    taskqueue.DeferredQueue
	interval time.Duration
	ttl      time.Duration
	logger   *zap.Logger
}

func NewReclaimer(store taskqueue.DeferredQueue, interval, ttl time.Duration, logger *zap.Logger) *Reclaimer {
	return &Reclaimer{store: store, interval: interval, ttl: ttl, logger: logger}
}

// Run ticks every interval and releases stale claims.
// Stops cleanly when ctx is cancelled.
func (r *Reclaimer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("claim reclaimer started",
		zap.Duration("interval", r.interval), zap.Duration("ttl", r.ttl))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("claim reclaimer stopping")
			return
		case <-ticker.C:
			released, err := r.store.ReleaseStale(ctx, r.ttl)
			if err != nil {
				r.logger.Error("release stale claims failed", zap.Error(err))
				continue
			}
			if released > 0 {
				r.logger.Warn("released stale task claims", zap.Int("count", released))
			}
		}
	}
}
