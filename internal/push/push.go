// Package push dispatches reminder notifications to a user's device.
package push

import (
	"context"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// Receipt is the provider acknowledgement for one dispatched push.
type Receipt struct {
	MessageID string
}

// Sender abstracts the push provider. Delivery is best-effort: a send
// failure never undoes the persisted notification. Mocking this
// interface in tests gives full control over provider behaviour.
type Sender interface {
	Send(ctx context.Context, deviceToken string, n *domain.Notification) (*Receipt, error)
}
