package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/repository"
)

// InboxService exposes the notification inbox to its collaborator:
// listing, read toggles, unread count and manual deletion. Creation
// happens only in the executor; this service never writes new rows.
type InboxService struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func NewInboxService(repo repository.NotificationRepository, logger *zap.Logger) *InboxService {
	return &InboxService{repo: repo, logger: logger}
}

// List returns a page of the user's notifications, newest first.
func (s *InboxService) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Notification, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.ListByUser(ctx, filter)
}

func (s *InboxService) MarkRead(ctx context.Context, id string, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *InboxService) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.logger.Debug("marked all notifications read",
			zap.Int64("user_id", userID), zap.Int("count", updated))
	}
	return updated, nil
}

func (s *InboxService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

// Delete removes a notification manually, ahead of its retention
// cleanup. The later cleanup task then no-ops. Scoped to the owner:
// a caller can only delete its own notifications.
func (s *InboxService) Delete(ctx context.Context, id string, userID int64) error {
	return s.repo.DeleteByUser(ctx, id, userID)
}
