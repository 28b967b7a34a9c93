package push

import (
	"context"
	"errors"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// ErrUnavailable is returned by Unavailable for every send attempt.
var ErrUnavailable = errors.New("push delivery unavailable")

// Unavailable is the degraded-mode sender used when FCM could not be
// initialised at startup. Reminders still land in the inbox; every push
// attempt fails and is recorded as such.
type Unavailable struct{}

func (Unavailable) Send(_ context.Context, _ string, _ *domain.Notification) (*Receipt, error) {
	return nil, ErrUnavailable
}
