package repository

import (
	"context"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// NotificationRepository defines all persistence operations for inbox
// notifications. The pgx implementation is in pg_notification_repo.go;
// tests use a hand-written mock (mock_notification_repo.go).
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, filter domain.ListFilter) ([]*domain.Notification, int, error)
	MarkRead(ctx context.Context, id string, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	// Delete removes a notification regardless of owner. Reserved for
	// the retention cleanup task; the API path must use DeleteByUser.
	// Returns domain.ErrNotFound when the row is already gone; the
	// cleanup handler treats that as a no-op.
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes a notification only if it belongs to userID.
	// Returns domain.ErrNotFound otherwise, so a caller can never tell
	// a foreign notification apart from a missing one.
	DeleteByUser(ctx context.Context, id string, userID int64) error
}
