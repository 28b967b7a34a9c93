package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// claimBatch bounds how many due tasks one poll moves into the
// dispatch queue.
const claimBatch = 500

// Poller periodically claims due tasks from the durable queue and hands
// them to the dispatch queue. Fire-at precision is therefore bounded by
// the poll interval: a task runs at fire-at plus at most one interval,
// never before.
type Poller struct {
	store    taskqueue.DeferredQueue
	dq       *queue.DispatchQueue
	interval time.Duration
	logger   *zap.Logger
}

func NewPoller(store taskqueue.DeferredQueue, dq *queue.DispatchQueue, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{store: store, dq: dq, interval: interval, logger: logger}
}

// Run ticks every interval and dispatches any tasks that are now due.
// Stops cleanly when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("task poller started", zap.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("task poller stopping")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	tasks, err := p.store.ClaimDue(ctx, claimBatch)
	if err != nil {
		p.logger.Error("claim due tasks failed", zap.Error(err))
		return
	}

	dispatched := 0
	for _, t := range tasks {
		if err := p.dq.Enqueue(t); err != nil {
			if errors.Is(err, domain.ErrQueueFull) {
				// Put the claim back so the next poll retries it instead
				// of waiting out the stale-claim TTL.
				if relErr := p.store.Release(ctx, t.ID); relErr != nil {
					p.logger.Error("release after full queue failed",
						zap.String("task_id", t.ID), zap.Error(relErr))
				}
				continue
			}
			p.logger.Warn("could not dispatch task",
				zap.String("task_id", t.ID), zap.Error(err))
			continue
		}
		dispatched++
	}

	if dispatched > 0 {
		p.logger.Info("dispatched due tasks", zap.Int("count", dispatched))
	}
}
