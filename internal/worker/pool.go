package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/executor"
	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// MetricHooks carries the metric callback injected by main.
// Using a struct keeps the pool constructor signature clean.
type MetricHooks struct {
	OnResult func(kind domain.TaskKind, outcome domain.Outcome, latency time.Duration)
}

// Pool manages the lifecycle of all task workers. All workers share the
// same dispatch queue; its double-select keeps reminders ahead of
// cleanups without any coordination here.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
}

func NewPool(
	size int,
	dq *queue.DispatchQueue,
	store taskqueue.DeferredQueue,
	exec *executor.Executor,
	logger *zap.Logger,
	hooks MetricHooks,
) *Pool {
	workers := make([]*Worker, size)
	for i := range workers {
		workers[i] = NewWorker(
			i, dq, store, exec,
			logger.With(zap.Int("worker_id", i)),
			hooks.OnResult,
		)
	}
	return &Pool{workers: workers}
}

// Start launches all workers as goroutines. Cancelling ctx triggers a
// graceful shutdown of the entire pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Wait blocks until every worker has returned after ctx is cancelled.
// Call this after cancelling the context so in-flight tasks finish.
func (p *Pool) Wait() {
	p.wg.Wait()
}
