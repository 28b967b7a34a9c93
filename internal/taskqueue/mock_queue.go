package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/domain"
)

// MockQueue is an in-memory DeferredQueue for unit tests.
// It honours the same state transitions as the Postgres queue.
type MockQueue struct {
	mu    sync.Mutex
	clock clock.Clock
	tasks map[string]*mockTask

	// Optional error override to simulate enqueue failures.
	EnqueueErr error
}

type mockTask struct {
	Task
	Status    TaskStatus
	ClaimedAt time.Time
	LastError string
}

func NewMockQueue(clk clock.Clock) *MockQueue {
	return &MockQueue{clock: clk, tasks: make(map[string]*mockTask)}
}

func (m *MockQueue) Enqueue(_ context.Context, kind domain.TaskKind, payload any, fireAt time.Time) (Handle, error) {
	if m.EnqueueErr != nil {
		return Handle{}, m.EnqueueErr
	}
	if !kind.IsValid() {
		return Handle{}, domain.ErrInvalidKind
	}
	if !fireAt.After(m.clock.Now()) {
		return Handle{}, domain.ErrFireAtInPast
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Handle{}, fmt.Errorf("marshal task payload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.tasks[id] = &mockTask{
		Task:   Task{ID: id, Kind: kind, Payload: body, FireAt: fireAt},
		Status: StatusPending,
	}
	return Handle{ID: id, Kind: kind, FireAt: fireAt}, nil
}

func (m *MockQueue) ClaimDue(_ context.Context, limit int) ([]*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	var due []*mockTask
	for _, t := range m.tasks {
		if t.Status == StatusPending && !t.FireAt.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FireAt.Before(due[j].FireAt) })
	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]*Task, 0, len(due))
	for _, t := range due {
		t.Status = StatusClaimed
		t.ClaimedAt = now
		clone := t.Task
		out = append(out, &clone)
	}
	return out, nil
}

func (m *MockQueue) Complete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Status = StatusDone
	}
	return nil
}

func (m *MockQueue) Fail(_ context.Context, id, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Status = StatusFailed
		t.LastError = reason
	}
	return nil
}

func (m *MockQueue) Release(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok && t.Status == StatusClaimed {
		t.Status = StatusPending
	}
	return nil
}

func (m *MockQueue) ReleaseStale(_ context.Context, ttl time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.clock.Now().Add(-ttl)
	released := 0
	for _, t := range m.tasks {
		if t.Status == StatusClaimed && t.ClaimedAt.Before(cutoff) {
			t.Status = StatusPending
			released++
		}
	}
	return released, nil
}

func (m *MockQueue) PendingCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if t.Status == StatusPending {
			n++
		}
	}
	return n, nil
}

// ---- test inspection helpers ----

// Pending returns pending tasks of the given kind ordered by fire-at.
func (m *MockQueue) Pending(kind domain.TaskKind) []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Task
	for _, t := range m.tasks {
		if t.Status == StatusPending && t.Kind == kind {
			out = append(out, t.Task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

// StatusOf returns the current status of a task by handle ID.
func (m *MockQueue) StatusOf(id string) (TaskStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return "", false
	}
	return t.Status, true
}

var _ DeferredQueue = (*MockQueue)(nil)
