package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// MockNotificationRepository is a hand-written, in-memory implementation
// of NotificationRepository used in unit tests. No mock-generation
// library needed.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification

	// Optional error overrides, set in tests to simulate failure paths.
	CreateErr error
	DeleteErr error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]*domain.Notification),
	}
}

func (m *MockNotificationRepository) Create(_ context.Context, n *domain.Notification) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *n
	m.notifications[n.ID] = &clone
	return nil
}

func (m *MockNotificationRepository) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (m *MockNotificationRepository) ListByUser(_ context.Context, f domain.ListFilter) ([]*domain.Notification, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID != f.UserID {
			continue
		}
		if f.UnreadOnly && n.Read {
			continue
		}
		clone := *n
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, len(result), nil
}

func (m *MockNotificationRepository) MarkRead(_ context.Context, id string, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	n.Read = true
	return nil
}

func (m *MockNotificationRepository) MarkAllRead(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (m *MockNotificationRepository) UnreadCount(_ context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *MockNotificationRepository) DeleteByUser(_ context.Context, id string, userID int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.notifications, id)
	return nil
}

// Len reports how many notifications are stored. Test helper.
func (m *MockNotificationRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notifications)
}

var _ NotificationRepository = (*MockNotificationRepository)(nil)
