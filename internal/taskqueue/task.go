package taskqueue

import (
	"encoding/json"
	"time"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// TaskStatus is the lifecycle of a scheduled task row.
//
//	pending -> claimed -> done
//	                   -> failed
//	claimed -> pending          (stale claim released after a crash)
type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusClaimed TaskStatus = "claimed"
	StatusDone    TaskStatus = "done"
	StatusFailed  TaskStatus = "failed"
)

// Task is one unit of deferred work loaded from the store.
// Payload stays raw here; the executor decodes it by Kind.
type Task struct {
	ID      string
	Kind    domain.TaskKind
	Payload json.RawMessage
	FireAt  time.Time
}

// Handle identifies an enqueued task. Returned to the scheduling caller
// for observability; there is no cancellation primitive built on it.
type Handle struct {
	ID     string          `json:"id"`
	Kind   domain.TaskKind `json:"kind"`
	FireAt time.Time       `json:"fire_at"`
}
