// Package scheduler turns a newly created calendar event into durable
// deferred reminder tasks.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
	"github.com/gyeongjo/reminderhub/internal/trigger"
)

// Orchestrator is called synchronously by the event-management
// collaborator when an event is created. It does not track the returned
// handles afterwards: there is no cancel-on-update, and stale tasks are
// neutralized at fire time instead.
type Orchestrator struct {
	calc   *trigger.Calculator
	queue  taskqueue.DeferredQueue
	logger *zap.Logger
}

func NewOrchestrator(calc *trigger.Calculator, queue taskqueue.DeferredQueue, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{calc: calc, queue: queue, logger: logger}
}

// ScheduleReminders computes the reminder triggers for the event start
// and enqueues one reminder task per trigger. Offsets already in the
// past were dropped by the calculator, so an empty result for an
// imminent event is normal. The returned handles exist for
// observability; nothing cancels through them.
func (o *Orchestrator) ScheduleReminders(ctx context.Context, eventID int64, start time.Time) ([]taskqueue.Handle, error) {
	triggers := o.calc.Compute(start)

	handles := make([]taskqueue.Handle, 0, len(triggers))
	for _, t := range triggers {
		h, err := o.queue.Enqueue(ctx, domain.TaskReminder,
			domain.ReminderPayload{EventID: eventID, Label: t.Label}, t.FireAt)
		if err != nil {
			// The trigger can slip into the past between computation and
			// insert; dropping it matches dropping it at computation time.
			if errors.Is(err, domain.ErrFireAtInPast) {
				o.logger.Debug("trigger passed before enqueue",
					zap.Int64("event_id", eventID), zap.String("label", t.Label))
				continue
			}
			return handles, fmt.Errorf("enqueue reminder %q: %w", t.Label, err)
		}

		o.logger.Info("reminder scheduled",
			zap.Int64("event_id", eventID),
			zap.String("label", t.Label),
			zap.Time("fire_at", t.FireAt),
			zap.String("task_id", h.ID),
		)
		handles = append(handles, h)
	}

	o.logger.Info("reminders scheduled for event",
		zap.Int64("event_id", eventID), zap.Int("count", len(handles)))
	return handles, nil
}
