package repository

import (
	"context"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// EventReader is the read-only view of the event-management
// collaborator's store. This service never writes calendar events.
type EventReader interface {
	// GetEvent returns domain.ErrEventNotFound when the event has been
	// deleted since its reminders were scheduled.
	GetEvent(ctx context.Context, id int64) (*domain.CalendarEvent, error)
}

// PreferenceReader is the read-only view of the user-management
// collaborator's store.
type PreferenceReader interface {
	// GetPreferences returns domain.ErrUserNotFound when the owner no
	// longer exists.
	GetPreferences(ctx context.Context, userID int64) (*domain.UserPreference, error)
}
