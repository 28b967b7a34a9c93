package worker

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/executor"
	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// Worker is a single goroutine that continuously pulls tasks from the
// dispatch queue, runs them through the executor, and acknowledges the
// result against the durable queue. Workers are stateless; a task's
// correctness depends only on the data for its own event/notification,
// so workers never coordinate with each other.
type Worker struct {
	id     int
	dq     *queue.DispatchQueue
	store  taskqueue.DeferredQueue
	exec   *executor.Executor
	logger *zap.Logger

	// Hook for metrics, injected by the pool so the worker stays
	// metrics-agnostic. Never nil.
	onResult func(kind domain.TaskKind, outcome domain.Outcome, latency time.Duration)
}

func NewWorker(
	id int,
	dq *queue.DispatchQueue,
	store taskqueue.DeferredQueue,
	exec *executor.Executor,
	logger *zap.Logger,
	onResult func(domain.TaskKind, domain.Outcome, time.Duration),
) *Worker {
	if onResult == nil {
		onResult = func(domain.TaskKind, domain.Outcome, time.Duration) {}
	}
	return &Worker{id: id, dq: dq, store: store, exec: exec, logger: logger, onResult: onResult}
}

// Run blocks until ctx is cancelled, processing one task per iteration.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started", zap.Int("id", w.id))
	for {
		t, ok := w.dq.Dequeue(ctx)
		if !ok {
			w.logger.Info("worker stopping", zap.Int("id", w.id))
			return
		}
		w.process(ctx, t)
	}
}

func (w *Worker) process(ctx context.Context, t *taskqueue.Task) {
	start := time.Now()
	log := w.logger.With(
		zap.String("task_id", t.ID),
		zap.String("kind", string(t.Kind)),
	)

	result := w.execute(ctx, t, log)
	latency := time.Since(start)

	// The result is terminal either way: no handler failure is handed
	// back to the queue for redelivery. Redelivery exists only for
	// claims orphaned by a crash.
	if result.Success() {
		if err := w.store.Complete(ctx, t.ID); err != nil {
			log.Error("failed to acknowledge task", zap.Error(err))
		}
	} else {
		reason := string(result.Outcome)
		if result.Err != nil {
			reason = result.Err.Error()
		}
		if err := w.store.Fail(ctx, t.ID, reason); err != nil {
			log.Error("failed to record task failure", zap.Error(err))
		}
	}

	w.onResult(t.Kind, result.Outcome, latency)
	log.Info("task finished",
		zap.String("outcome", string(result.Outcome)),
		zap.Bool("success", result.Success()),
		zap.Duration("latency", latency),
	)
}

func (w *Worker) execute(ctx context.Context, t *taskqueue.Task, log *zap.Logger) domain.FireResult {
	switch t.Kind {
	case domain.TaskReminder:
		var p domain.ReminderPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			log.Error("malformed reminder payload", zap.Error(err))
			return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
		}
		return w.exec.FireReminder(ctx, p)

	case domain.TaskCleanup:
		var p domain.CleanupPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			log.Error("malformed cleanup payload", zap.Error(err))
			return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
		}
		return w.exec.FireCleanup(ctx, p)

	default:
		log.Error("unknown task kind")
		return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: domain.ErrInvalidKind}
	}
}
