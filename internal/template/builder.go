// Package template resolves reminder message text from a static
// (category × label) table.
package template

import (
	"fmt"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// Message is the rendered title/body pair for one reminder.
// Event date, time and location are NOT interpolated here; they travel
// as separate Notification fields for the inbox client to render.
type Message struct {
	Title string
	Body  string
}

// entry holds the per-category format strings. titleFmt takes the
// label; bodyFmt takes the event title and the label.
type entry struct {
	titleFmt string
	bodyFmt  string
}

// The table is keyed by category. Every category the event model allows
// has an entry; CategoryOther doubles as the mandatory fallback for any
// value outside the closed set.
var table = map[domain.Category]entry{
	domain.CategoryWedding: {
		titleFmt: "Wedding reminder · %s",
		bodyFmt:  "%s is coming up (%s). Time to prepare your congratulatory gift.",
	},
	domain.CategoryFuneral: {
		titleFmt: "Funeral reminder · %s",
		bodyFmt:  "%s is approaching (%s). Remember to pay your respects.",
	},
	domain.CategoryBirthday: {
		titleFmt: "Birthday reminder · %s",
		bodyFmt:  "%s is coming up (%s). Don't forget a gift!",
	},
	domain.CategoryFirstBirthday: {
		titleFmt: "First-birthday reminder · %s",
		bodyFmt:  "%s is coming up (%s). A doljanchi gift may be expected.",
	},
	domain.CategoryGraduation: {
		titleFmt: "Graduation reminder · %s",
		bodyFmt:  "%s is coming up (%s). Congratulations are in order.",
	},
	domain.CategoryRetirement: {
		titleFmt: "Retirement reminder · %s",
		bodyFmt:  "%s is coming up (%s). Consider a farewell gift.",
	},
	domain.CategoryOpening: {
		titleFmt: "Opening reminder · %s",
		bodyFmt:  "%s is coming up (%s). A celebratory visit is customary.",
	},
	domain.CategoryAnniversary: {
		titleFmt: "Anniversary reminder · %s",
		bodyFmt:  "%s is coming up (%s).",
	},
	domain.CategoryOther: {
		titleFmt: "Event reminder · %s",
		bodyFmt:  "%s is coming up (%s).",
	},
}

// Resolve renders the message for a category/label pair using the event
// title. An unknown category falls back to the "other" entry; Resolve
// never fails.
func Resolve(category domain.Category, label, eventTitle string) Message {
	e, ok := table[category]
	if !ok {
		e = table[domain.CategoryOther]
	}
	return Message{
		Title: fmt.Sprintf(e.titleFmt, label),
		Body:  fmt.Sprintf(e.bodyFmt, eventTitle, label),
	}
}
