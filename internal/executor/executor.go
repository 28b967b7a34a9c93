// Package executor runs deferred tasks at fire time.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/push"
	"github.com/gyeongjo/reminderhub/internal/ratelimiter"
	"github.com/gyeongjo/reminderhub/internal/repository"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
	"github.com/gyeongjo/reminderhub/internal/template"
)

// Executor is the fire-time half of the reminder pipeline. Scheduling
// decided only WHEN to run; everything about whether and what to
// deliver is re-evaluated here, which is what makes redelivered and
// stale tasks harmless.
//
// Every entry point converts its result into a domain.FireResult at the
// boundary instead of letting errors reach the queue runtime: a blind
// queue-level retry of a time-sensitive reminder has ambiguous
// correctness, so there is none.
type Executor struct {
	events    repository.EventReader
	prefs     repository.PreferenceReader
	repo      repository.NotificationRepository
	queue     taskqueue.DeferredQueue
	sender    push.Sender
	limiter   *ratelimiter.PushLimiter
	clock     clock.Clock
	retention time.Duration
	logger    *zap.Logger
}

func New(
	events repository.EventReader,
	prefs repository.PreferenceReader,
	repo repository.NotificationRepository,
	queue taskqueue.DeferredQueue,
	sender push.Sender,
	limiter *ratelimiter.PushLimiter,
	clk clock.Clock,
	retentionDays int,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		events:    events,
		prefs:     prefs,
		repo:      repo,
		queue:     queue,
		sender:    sender,
		limiter:   limiter,
		clock:     clk,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// FireReminder executes one reminder task.
//
// The sequence: load event, check its status, load the owner's
// preferences, resolve the message, persist the notification, schedule
// its retention cleanup, and finally attempt push dispatch. A push
// failure never rolls back the persisted notification: the inbox entry
// is the at-least-visible floor of delivery.
func (e *Executor) FireReminder(ctx context.Context, p domain.ReminderPayload) (result domain.FireResult) {
	log := e.logger.With(
		zap.Int64("event_id", p.EventID),
		zap.String("label", p.Label),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("reminder handler panic", zap.Any("panic", r))
			result = domain.FireResult{
				Outcome: domain.OutcomePersistFailed,
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	event, err := e.events.GetEvent(ctx, p.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			log.Warn("event gone before reminder fired")
			return domain.FireResult{Outcome: domain.OutcomeEventMissing, Err: err}
		}
		log.Error("event lookup failed", zap.Error(err))
		return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
	}

	// The event was resolved between scheduling and firing; that is the
	// normal fate of stale tasks, not an error.
	if event.Status.Resolved() {
		log.Debug("event resolved, reminder suppressed", zap.String("status", string(event.Status)))
		return domain.FireResult{Outcome: domain.OutcomeSuppressed}
	}

	pref, err := e.prefs.GetPreferences(ctx, event.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Warn("event owner gone before reminder fired", zap.Int64("user_id", event.OwnerID))
			return domain.FireResult{Outcome: domain.OutcomeUserMissing, Err: err}
		}
		log.Error("preference lookup failed", zap.Error(err))
		return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
	}

	if !pref.Allows(event.Category) {
		log.Debug("reminder suppressed by user preference", zap.Int64("user_id", pref.UserID))
		return domain.FireResult{Outcome: domain.OutcomeSuppressed}
	}

	n := e.buildNotification(event, p.Label)
	if err := e.repo.Create(ctx, n); err != nil {
		log.Error("persist notification failed", zap.Error(err))
		return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
	}

	e.scheduleCleanup(ctx, n.ID, event.StartAt, log)

	// No device token: the inbox entry above is the whole delivery.
	if pref.DeviceToken == "" {
		log.Info("no device token, push skipped", zap.String("notification_id", n.ID))
		return domain.FireResult{Outcome: domain.OutcomeStored}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		// ctx cancelled while waiting, meaning shutdown. The notification
		// is persisted; only the push is lost.
		return domain.FireResult{Outcome: domain.OutcomePushFailed, Err: err}
	}

	receipt, err := e.sender.Send(ctx, pref.DeviceToken, n)
	if err != nil {
		log.Warn("push dispatch failed", zap.String("notification_id", n.ID), zap.Error(err))
		return domain.FireResult{Outcome: domain.OutcomePushFailed, Err: err}
	}

	log.Info("reminder delivered",
		zap.String("notification_id", n.ID),
		zap.String("provider_msg_id", receipt.MessageID),
	)
	return domain.FireResult{Outcome: domain.OutcomeDelivered}
}

// FireCleanup purges a notification whose retention window has passed.
// An already-deleted notification is a success: the desired end state
// (row absent) holds either way, which keeps redelivery harmless.
func (e *Executor) FireCleanup(ctx context.Context, p domain.CleanupPayload) domain.FireResult {
	err := e.repo.Delete(ctx, p.NotificationID)
	switch {
	case err == nil:
		e.logger.Info("notification purged", zap.String("notification_id", p.NotificationID))
		return domain.FireResult{Outcome: domain.OutcomeCleaned}
	case errors.Is(err, domain.ErrNotFound):
		e.logger.Debug("notification already gone", zap.String("notification_id", p.NotificationID))
		return domain.FireResult{Outcome: domain.OutcomeCleaned}
	default:
		e.logger.Error("cleanup delete failed",
			zap.String("notification_id", p.NotificationID), zap.Error(err))
		return domain.FireResult{Outcome: domain.OutcomePersistFailed, Err: err}
	}
}

func (e *Executor) buildNotification(event *domain.CalendarEvent, label string) *domain.Notification {
	msg := template.Resolve(event.Category, label, event.Title)

	// Date and time both come from the event's own wall clock so the
	// stored pair always names the same local day. Truncating on UTC
	// epoch days would shift the date for non-UTC events starting before
	// the UTC day boundary.
	y, mo, d := event.StartAt.Date()
	eventDate := time.Date(y, mo, d, 0, 0, 0, 0, event.StartAt.Location())
	eventTime := event.StartAt.Format("15:04")

	return &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    event.OwnerID,
		Title:     msg.Title,
		Body:      msg.Body,
		Category:  event.Category,
		EventDate: &eventDate,
		EventTime: &eventTime,
		Location:  event.Location,
		Read:      false,
		CreatedAt: e.clock.Now(),
	}
}

// scheduleCleanup enqueues the retention purge for a just-created
// notification. Failure to enqueue is logged and swallowed: the
// notification must stay visible even if its cleanup is lost.
func (e *Executor) scheduleCleanup(ctx context.Context, notificationID string, eventStart time.Time, log *zap.Logger) {
	fireAt := eventStart.Add(e.retention)
	_, err := e.queue.Enqueue(ctx, domain.TaskCleanup,
		domain.CleanupPayload{NotificationID: notificationID}, fireAt)
	if err != nil {
		log.Error("schedule cleanup failed",
			zap.String("notification_id", notificationID),
			zap.Time("fire_at", fireAt),
			zap.Error(err),
		)
		return
	}
	log.Debug("cleanup scheduled",
		zap.String("notification_id", notificationID),
		zap.Time("fire_at", fireAt),
	)
}
