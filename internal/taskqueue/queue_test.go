package taskqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// stepClock is a movable test clock. Advance it to simulate waiting.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

func newQueue() (*taskqueue.MockQueue, *stepClock) {
	clk := &stepClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return taskqueue.NewMockQueue(clk), clk
}

func TestQueue_EnqueueValidation(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	_, err := q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 1}, clk.Now().Add(-time.Minute))
	if err != domain.ErrFireAtInPast {
		t.Fatalf("expected ErrFireAtInPast, got %v", err)
	}

	_, err = q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 1}, clk.Now())
	if err != domain.ErrFireAtInPast {
		t.Fatalf("expected ErrFireAtInPast for fire-at == now, got %v", err)
	}

	_, err = q.Enqueue(ctx, domain.TaskKind("vacuum"), nil, clk.Now().Add(time.Hour))
	if err != domain.ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestQueue_ClaimDueOnlyReturnsDueTasks(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	due, _ := q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 1}, clk.Now().Add(time.Hour))
	_, _ = q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 2}, clk.Now().Add(48*time.Hour))

	clk.t = clk.t.Add(2 * time.Hour)

	claimed, err := q.ClaimDue(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claimed) != 1 {
		t.Fatalf("expected 1 due task, got %d", len(claimed))
	}
	if claimed[0].ID != due.ID {
		t.Fatalf("expected task %s, got %s", due.ID, claimed[0].ID)
	}

	// Claimed tasks are invisible to the next poll.
	again, _ := q.ClaimDue(ctx, 10)
	if len(again) != 0 {
		t.Fatalf("expected claimed task to be skipped, got %d", len(again))
	}
}

func TestQueue_ClaimDueHonoursLimit(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, _ = q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: i}, clk.Now().Add(time.Minute))
	}
	clk.t = clk.t.Add(time.Hour)

	claimed, _ := q.ClaimDue(ctx, 3)
	if len(claimed) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(claimed))
	}
}

func TestQueue_CompleteAndFailAreTerminal(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	h1, _ := q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 1}, clk.Now().Add(time.Minute))
	h2, _ := q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 2}, clk.Now().Add(time.Minute))
	clk.t = clk.t.Add(time.Hour)

	if _, err := q.ClaimDue(ctx, 10); err != nil {
		t.Fatalf("claim: %v", err)
	}
	_ = q.Complete(ctx, h1.ID)
	_ = q.Fail(ctx, h2.ID, "event_missing")

	if st, _ := q.StatusOf(h1.ID); st != taskqueue.StatusDone {
		t.Fatalf("expected done, got %s", st)
	}
	if st, _ := q.StatusOf(h2.ID); st != taskqueue.StatusFailed {
		t.Fatalf("expected failed, got %s", st)
	}

	// Neither is ever redelivered.
	clk.t = clk.t.Add(24 * time.Hour)
	if claimed, _ := q.ClaimDue(ctx, 10); len(claimed) != 0 {
		t.Fatalf("terminal tasks must not be redelivered, got %d", len(claimed))
	}
}

func TestQueue_ReleaseReturnsTaskToPending(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	h, _ := q.Enqueue(ctx, domain.TaskCleanup, domain.CleanupPayload{NotificationID: "n1"}, clk.Now().Add(time.Minute))
	clk.t = clk.t.Add(time.Hour)
	_, _ = q.ClaimDue(ctx, 10)

	if err := q.Release(ctx, h.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	if st, _ := q.StatusOf(h.ID); st != taskqueue.StatusPending {
		t.Fatalf("expected pending after release, got %s", st)
	}

	claimed, _ := q.ClaimDue(ctx, 10)
	if len(claimed) != 1 || claimed[0].ID != h.ID {
		t.Fatalf("expected released task to be claimable again, got %+v", claimed)
	}
}

func TestQueue_ReleaseStaleRecoversOrphanedClaims(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	h, _ := q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: 1}, clk.Now().Add(time.Minute))
	clk.t = clk.t.Add(time.Hour)
	_, _ = q.ClaimDue(ctx, 10)

	// Claim is fresh: nothing to release.
	released, err := q.ReleaseStale(ctx, 5*time.Minute)
	if err != nil || released != 0 {
		t.Fatalf("expected no stale claims yet, got %d err=%v", released, err)
	}

	// Simulate the claiming process dying and the TTL passing.
	clk.t = clk.t.Add(10 * time.Minute)
	released, err = q.ReleaseStale(ctx, 5*time.Minute)
	if err != nil || released != 1 {
		t.Fatalf("expected 1 released claim, got %d err=%v", released, err)
	}
	if st, _ := q.StatusOf(h.ID); st != taskqueue.StatusPending {
		t.Fatalf("expected pending after stale release, got %s", st)
	}
}

func TestQueue_PendingCount(t *testing.T) {
	q, clk := newQueue()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, _ = q.Enqueue(ctx, domain.TaskReminder, domain.ReminderPayload{EventID: i}, clk.Now().Add(time.Hour))
	}

	n, err := q.PendingCount(ctx)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 pending, got %d err=%v", n, err)
	}
}
