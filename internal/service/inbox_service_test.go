package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/repository"
	"github.com/gyeongjo/reminderhub/internal/service"
)

func newInbox() (*service.InboxService, *repository.MockNotificationRepository) {
	repo := repository.NewMockNotificationRepository()
	return service.NewInboxService(repo, zap.NewNop()), repo
}

var seedSeq int

func seed(repo *repository.MockNotificationRepository, userID int64, count int, read bool) []string {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		seedSeq++
		id := fmt.Sprintf("n-%d-%d", userID, seedSeq)
		_ = repo.Create(context.Background(), &domain.Notification{
			ID:        id,
			UserID:    userID,
			Title:     "Wedding reminder · 3 days before",
			Body:      "Jimin & Sora is coming up (3 days before).",
			Category:  domain.CategoryWedding,
			Read:      read,
			CreatedAt: time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		})
		ids = append(ids, id)
	}
	return ids
}

func TestInbox_ListIsScopedToUser(t *testing.T) {
	svc, repo := newInbox()
	seed(repo, 7, 3, false)
	seed(repo, 8, 2, false)

	list, total, err := svc.List(context.Background(), domain.ListFilter{UserID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("expected 3 notifications for user 7, got %d", len(list))
	}
	for _, n := range list {
		if n.UserID != 7 {
			t.Fatalf("leaked notification for user %d", n.UserID)
		}
	}
}

func TestInbox_ListNewestFirst(t *testing.T) {
	svc, repo := newInbox()
	seed(repo, 7, 3, false)

	list, _, _ := svc.List(context.Background(), domain.ListFilter{UserID: 7})
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatal("expected newest-first ordering")
		}
	}
}

func TestInbox_ListNormalisesPagination(t *testing.T) {
	svc, repo := newInbox()
	seed(repo, 7, 1, false)

	// Nonsense paging values fall back to defaults instead of erroring.
	_, total, err := svc.List(context.Background(), domain.ListFilter{UserID: 7, Page: -3, Limit: 9999})
	if err != nil || total != 1 {
		t.Fatalf("expected defaults to apply, total=%d err=%v", total, err)
	}
}

func TestInbox_UnreadFilterAndCount(t *testing.T) {
	svc, repo := newInbox()
	seed(repo, 7, 2, false)
	seed(repo, 7, 3, true)

	list, _, _ := svc.List(context.Background(), domain.ListFilter{UserID: 7, UnreadOnly: true})
	if len(list) != 2 {
		t.Fatalf("expected 2 unread, got %d", len(list))
	}

	count, err := svc.UnreadCount(context.Background(), 7)
	if err != nil || count != 2 {
		t.Fatalf("expected unread count 2, got %d err=%v", count, err)
	}
}

func TestInbox_MarkRead(t *testing.T) {
	svc, repo := newInbox()
	ids := seed(repo, 7, 1, false)

	if err := svc.MarkRead(context.Background(), ids[0], 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := svc.UnreadCount(context.Background(), 7)
	if count != 0 {
		t.Fatalf("expected 0 unread after mark, got %d", count)
	}
}

func TestInbox_MarkReadWrongUser(t *testing.T) {
	svc, repo := newInbox()
	ids := seed(repo, 7, 1, false)

	// Another user cannot touch someone else's notification.
	if err := svc.MarkRead(context.Background(), ids[0], 8); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInbox_MarkAllRead(t *testing.T) {
	svc, repo := newInbox()
	seed(repo, 7, 4, false)
	seed(repo, 7, 2, true)

	updated, err := svc.MarkAllRead(context.Background(), 7)
	if err != nil || updated != 4 {
		t.Fatalf("expected 4 updated, got %d err=%v", updated, err)
	}

	// Idempotent: a second call has nothing left to update.
	updated, _ = svc.MarkAllRead(context.Background(), 7)
	if updated != 0 {
		t.Fatalf("expected 0 on repeat, got %d", updated)
	}
}

func TestInbox_Delete(t *testing.T) {
	svc, repo := newInbox()
	ids := seed(repo, 7, 1, false)

	if err := svc.Delete(context.Background(), ids[0], 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), ids[0], 7); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestInbox_DeleteWrongUser(t *testing.T) {
	svc, repo := newInbox()
	ids := seed(repo, 7, 1, false)

	// Knowing another user's notification UUID is not enough to delete it.
	if err := svc.Delete(context.Background(), ids[0], 8); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for a foreign notification, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatal("foreign delete must leave the notification in place")
	}
}
