// Package trigger computes the reminder instants for a calendar event.
package trigger

import (
	"fmt"
	"time"

	"github.com/gyeongjo/reminderhub/internal/clock"
)

// Offsets is the injected, immutable reminder offset configuration.
// It is process-wide, never per-event.
type Offsets struct {
	DaysBefore  []int
	HoursBefore []int
}

// Trigger is one computed reminder moment.
type Trigger struct {
	Label  string
	FireAt time.Time
}

// Calculator turns an event start instant into the list of future
// reminder triggers. It is pure apart from reading the injected clock.
type Calculator struct {
	offsets Offsets
	clock   clock.Clock
}

func NewCalculator(offsets Offsets, clk clock.Clock) *Calculator {
	return &Calculator{offsets: offsets, clock: clk}
}

// Compute returns one trigger per configured offset whose fire-at is
// still in the future. Offsets that have already passed are dropped
// silently; an event created inside its closest offset simply gets
// fewer reminders.
func (c *Calculator) Compute(start time.Time) []Trigger {
	now := c.clock.Now()
	triggers := make([]Trigger, 0, len(c.offsets.DaysBefore)+len(c.offsets.HoursBefore))

	for _, d := range c.offsets.DaysBefore {
		fireAt := start.Add(-time.Duration(d) * 24 * time.Hour)
		if !fireAt.After(now) {
			continue
		}
		triggers = append(triggers, Trigger{
			Label:  fmt.Sprintf("%d days before", d),
			FireAt: fireAt,
		})
	}

	for _, h := range c.offsets.HoursBefore {
		fireAt := start.Add(-time.Duration(h) * time.Hour)
		if !fireAt.After(now) {
			continue
		}
		triggers = append(triggers, Trigger{
			Label:  fmt.Sprintf("%d hours before", h),
			FireAt: fireAt,
		})
	}

	return triggers
}
