package domain

import "time"

// Category is the ceremonial event type. The set is closed; anything
// outside it falls back to CategoryOther when resolving message templates.
type Category string

const (
	CategoryWedding       Category = "wedding"
	CategoryFuneral       Category = "funeral"
	CategoryBirthday      Category = "birthday"
	CategoryFirstBirthday Category = "first_birthday"
	CategoryGraduation    Category = "graduation"
	CategoryRetirement    Category = "retirement"
	CategoryOpening       Category = "opening"
	CategoryAnniversary   Category = "anniversary"
	CategoryOther         Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWedding, CategoryFuneral, CategoryBirthday, CategoryFirstBirthday,
		CategoryGraduation, CategoryRetirement, CategoryOpening, CategoryAnniversary,
		CategoryOther:
		return true
	}
	return false
}

// EventStatus tracks the lifecycle of a calendar event.
// Resolved events (completed or cancelled) suppress any reminder
// that fires for them afterwards.
type EventStatus string

const (
	EventPlanned   EventStatus = "planned"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Resolved reports whether reminders for the event should no longer fire.
func (s EventStatus) Resolved() bool {
	return s == EventCompleted || s == EventCancelled
}

// CalendarEvent is the ceremonial event a reminder points at.
// It is owned by the event-management collaborator; this service only
// reads it, both at scheduling time and again at fire time.
type CalendarEvent struct {
	ID       int64       `json:"id"`
	OwnerID  int64       `json:"owner_id"`
	Title    string      `json:"title"`
	Category Category    `json:"category"`
	StartAt  time.Time   `json:"start_at"`
	Location *string     `json:"location,omitempty"`
	Status   EventStatus `json:"status"`
}
