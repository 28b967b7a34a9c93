// Package clock provides an injectable time source so scheduling
// arithmetic can be pinned in tests.
package clock

import "time"

// Clock yields the current instant. Implementations must return
// timezone-aware times; arithmetic downstream is instant-based.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
