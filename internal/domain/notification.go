package domain

import "time"

// Notification is a persisted inbox entry created when a reminder task
// fires and is not suppressed. Event date, time and location are carried
// as separate fields so the inbox client renders them itself; they are
// not interpolated into Body.
type Notification struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Category  Category   `json:"category"`
	EventDate *time.Time `json:"event_date,omitempty"`
	EventTime *string    `json:"event_time,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListFilter holds query parameters for paginated inbox listing.
type ListFilter struct {
	UserID     int64
	UnreadOnly bool
	Page       int
	Limit      int
}
