package repository

import (
	"context"
	"sync"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// MockEventReader serves canned calendar events in tests.
type MockEventReader struct {
	mu     sync.RWMutex
	events map[int64]*domain.CalendarEvent

	GetErr error
}

func NewMockEventReader() *MockEventReader {
	return &MockEventReader{events: make(map[int64]*domain.CalendarEvent)}
}

func (m *MockEventReader) Put(e *domain.CalendarEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *e
	m.events[e.ID] = &clone
}

func (m *MockEventReader) GetEvent(_ context.Context, id int64) (*domain.CalendarEvent, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

// MockPreferenceReader serves canned user preferences in tests.
type MockPreferenceReader struct {
	mu    sync.RWMutex
	prefs map[int64]*domain.UserPreference

	GetErr error
}

func NewMockPreferenceReader() *MockPreferenceReader {
	return &MockPreferenceReader{prefs: make(map[int64]*domain.UserPreference)}
}

func (m *MockPreferenceReader) Put(p *domain.UserPreference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *p
	m.prefs[p.UserID] = &clone
}

func (m *MockPreferenceReader) GetPreferences(_ context.Context, userID int64) (*domain.UserPreference, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

var (
	_ EventReader      = (*MockEventReader)(nil)
	_ PreferenceReader = (*MockPreferenceReader)(nil)
)
