package push

import (
	"context"
	"sync"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// SentPush records one Send call for test assertions.
type SentPush struct {
	DeviceToken string
	Title       string
	Body        string
}

// MockSender records dispatches in memory.
type MockSender struct {
	mu   sync.Mutex
	sent []SentPush

	SendErr error
}

func NewMockSender() *MockSender { return &MockSender{} }

func (m *MockSender) Send(_ context.Context, deviceToken string, n *domain.Notification) (*Receipt, error) {
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentPush{DeviceToken: deviceToken, Title: n.Title, Body: n.Body})
	return &Receipt{MessageID: "mock-msg"}, nil
}

func (m *MockSender) Sent() []SentPush {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentPush, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ Sender = (*MockSender)(nil)
