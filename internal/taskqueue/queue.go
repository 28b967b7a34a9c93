package taskqueue

import (
	"context"
	"time"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// DeferredQueue is the durable deferred work queue. An enqueued task is
// guaranteed to be handed to a worker at or after its fire-at, never
// before, and the guarantee survives process restarts because rows, not
// timers, carry the schedule.
//
// Delivery is at-least-once: a task claimed by a process that dies
// before acknowledging is released after a visibility timeout and
// delivered again. Handlers therefore re-validate state at fire time.
//
// The Postgres implementation is in pg_queue.go; tests use the
// in-memory MockQueue.
type DeferredQueue interface {
	// Enqueue stores a task to run at fireAt. payload is marshalled to
	// JSON. fireAt must be strictly in the future.
	Enqueue(ctx context.Context, kind domain.TaskKind, payload any, fireAt time.Time) (Handle, error)

	// ClaimDue atomically claims up to limit tasks whose fire-at has
	// passed. A claimed task is invisible to other callers until it is
	// acknowledged or its claim goes stale.
	ClaimDue(ctx context.Context, limit int) ([]*Task, error)

	// Complete acknowledges a claimed task as done.
	Complete(ctx context.Context, id string) error

	// Fail terminally records a claimed task as failed. There is no
	// automatic retry of failed tasks; the row is kept for operators.
	Fail(ctx context.Context, id string, reason string) error

	// Release returns a single claimed task to pending immediately,
	// used when the in-process hand-off buffer is full.
	Release(ctx context.Context, id string) error

	// ReleaseStale returns claimed-but-unacknowledged tasks older than
	// ttl to pending. Reports how many were released.
	ReleaseStale(ctx context.Context, ttl time.Duration) (int, error)

	// PendingCount reports how many tasks are waiting, for observability.
	PendingCount(ctx context.Context) (int, error)
}
