package domain

// TaskKind discriminates the payload of a deferred task.
type TaskKind string

const (
	// TaskReminder fires a reminder for a calendar event.
	TaskReminder TaskKind = "reminder"
	// TaskCleanup purges a notification after its retention window.
	TaskCleanup TaskKind = "cleanup"
)

func (k TaskKind) IsValid() bool {
	return k == TaskReminder || k == TaskCleanup
}

// ReminderPayload is the stored payload of a TaskReminder.
// It deliberately carries no event data beyond the ID: all state is
// re-read at fire time so stale tasks cannot act on stale snapshots.
type ReminderPayload struct {
	EventID int64  `json:"event_id"`
	Label   string `json:"label"`
}

// CleanupPayload is the stored payload of a TaskCleanup.
type CleanupPayload struct {
	NotificationID string `json:"notification_id"`
}

// Outcome classifies how a single task firing ended.
type Outcome string

const (
	// OutcomeDelivered: notification persisted and push dispatched.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeStored: notification persisted, no device token, push skipped.
	OutcomeStored Outcome = "stored"
	// OutcomePushFailed: notification persisted, push dispatch failed.
	OutcomePushFailed Outcome = "push_failed"
	// OutcomeSuppressed: event resolved or user opted out; intentional no-op.
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeEventMissing: target event no longer exists.
	OutcomeEventMissing Outcome = "event_missing"
	// OutcomeUserMissing: event owner no longer exists.
	OutcomeUserMissing Outcome = "user_missing"
	// OutcomePersistFailed: a store write failed mid-flight.
	OutcomePersistFailed Outcome = "persist_failed"
	// OutcomeCleaned: cleanup ran (target present or already gone).
	OutcomeCleaned Outcome = "cleaned"
)

// FireResult is the structured result every handler returns instead of
// letting errors escape into the queue runtime. Failures carry Err;
// suppressions do not, they are deliberate successes.
type FireResult struct {
	Outcome Outcome
	Err     error
}

// Success reports whether the task should be acknowledged as done.
// A failed push is still a success: the notification stays visible
// in the inbox and the push is not retried.
func (r FireResult) Success() bool {
	switch r.Outcome {
	case OutcomeEventMissing, OutcomeUserMissing, OutcomePersistFailed:
		return false
	}
	return true
}
