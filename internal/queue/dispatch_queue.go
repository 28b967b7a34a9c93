// Package queue holds the in-process hand-off buffer between the
// database poller and the worker pool. Durability lives in the
// scheduled_tasks table, not here: a task sitting in these channels at
// crash time is still claimed in the store and is redelivered once its
// claim goes stale.
package queue

import (
	"context"
	"fmt"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// DispatchQueue routes claimed tasks to one of two buffered channels by
// kind. Reminders are user-visible and time-sensitive; cleanups are
// housekeeping. Workers dequeue via the double-select pattern so a
// backlog of cleanups can never delay a due reminder.
type DispatchQueue struct {
	reminders chan *taskqueue.Task
	cleanups  chan *taskqueue.Task
}

func New() *DispatchQueue {
	return &DispatchQueue{
		reminders: make(chan *taskqueue.Task, 1000),
		cleanups:  make(chan *taskqueue.Task, 500),
	}
}

// Enqueue places a task on its kind's channel. It is non-blocking: if
// the channel is full, ErrQueueFull is returned and the caller leaves
// the task claimed in the store for a later poll.
func (q *DispatchQueue) Enqueue(t *taskqueue.Task) error {
	switch t.Kind {
	case domain.TaskReminder:
		select {
		case q.reminders <- t:
			return nil
		default:
			return domain.ErrQueueFull
		}
	case domain.TaskCleanup:
		select {
		case q.cleanups <- t:
			return nil
		default:
			return domain.ErrQueueFull
		}
	default:
		return fmt.Errorf("unknown task kind %q", t.Kind)
	}
}

// Dequeue blocks until a task is available or ctx is cancelled.
//
// The double-select: a non-blocking check drains reminders first; only
// when that channel is empty does the worker enter a fair blocking
// select across both channels and the done signal.
//
// Returns (nil, false) when ctx is cancelled (graceful shutdown signal).
func (q *DispatchQueue) Dequeue(ctx context.Context) (*taskqueue.Task, bool) {
	select {
	case t := <-q.reminders:
		return t, true
	default:
	}

	select {
	case t := <-q.reminders:
		return t, true
	case t := <-q.cleanups:
		return t, true
	case <-ctx.Done():
		return nil, false
	}
}

// Depths returns the number of tasks waiting in each channel.
// Used by the metrics handler for the queue snapshot.
func (q *DispatchQueue) Depths() (reminders, cleanups int) {
	return len(q.reminders), len(q.cleanups)
}
