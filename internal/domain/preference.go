package domain

// UserPreference is the notification configuration of an event owner,
// read from the user-management collaborator at fire time.
//
// DeviceToken empty means no push target is registered: the reminder
// still produces an inbox Notification but skips dispatch.
type UserPreference struct {
	UserID          int64
	PushEnabled     bool
	CategoryOptOuts []Category
	DeviceToken     string
}

// Allows reports whether reminders for the given category may reach the user.
func (p UserPreference) Allows(c Category) bool {
	if !p.PushEnabled {
		return false
	}
	for _, opt := range p.CategoryOptOuts {
		if opt == c {
			return false
		}
	}
	return true
}
