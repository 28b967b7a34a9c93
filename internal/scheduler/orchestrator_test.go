package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/scheduler"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
	"github.com/gyeongjo/reminderhub/internal/trigger"
)

var offsets = trigger.Offsets{DaysBefore: []int{3, 1}, HoursBefore: []int{3}}

func newOrchestrator(now time.Time) (*scheduler.Orchestrator, *taskqueue.MockQueue) {
	clk := clock.Fixed{T: now}
	q := taskqueue.NewMockQueue(clk)
	calc := trigger.NewCalculator(offsets, clk)
	return scheduler.NewOrchestrator(calc, q, zap.NewNop()), q
}

func TestOrchestrator_SchedulesOneTaskPerTrigger(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	orch, q := newOrchestrator(now)

	handles, err := orch.ScheduleReminders(context.Background(), 42, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("expected 3 handles, got %d", len(handles))
	}

	pending := q.Pending(domain.TaskReminder)
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending reminder tasks, got %d", len(pending))
	}

	wantLabels := []string{"3 days before", "1 days before", "3 hours before"}
	for i, task := range pending {
		var p domain.ReminderPayload
		if err := json.Unmarshal(task.Payload, &p); err != nil {
			t.Fatalf("task %d: bad payload: %v", i, err)
		}
		if p.EventID != 42 {
			t.Errorf("task %d: expected event 42, got %d", i, p.EventID)
		}
		if p.Label != wantLabels[i] {
			t.Errorf("task %d: expected label %q, got %q", i, wantLabels[i], p.Label)
		}
	}

	if !pending[2].FireAt.Equal(start.Add(-3 * time.Hour)) {
		t.Errorf("expected last fire-at %v, got %v", start.Add(-3*time.Hour), pending[2].FireAt)
	}
}

func TestOrchestrator_ImminentEventGetsFewerReminders(t *testing.T) {
	start := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	orch, q := newOrchestrator(start.Add(-12 * time.Hour))

	handles, err := orch.ScheduleReminders(context.Background(), 7, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handles) != 1 {
		t.Fatalf("expected only the 3-hour reminder, got %d handles", len(handles))
	}
	if len(q.Pending(domain.TaskReminder)) != 1 {
		t.Fatal("expected exactly one pending task")
	}
}

func TestOrchestrator_EnqueueErrorPropagates(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	orch, q := newOrchestrator(now)
	q.EnqueueErr = errors.New("connection refused")

	_, err := orch.ScheduleReminders(context.Background(), 1, now.Add(240*time.Hour))
	if err == nil {
		t.Fatal("expected enqueue failure to propagate")
	}
}
