package domain

import "errors"

// Sentinel errors used throughout the application.
// HTTP handlers translate these to status codes via a single mapError function.
var (
	ErrNotFound        = errors.New("not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidKind     = errors.New("invalid task kind")
	ErrFireAtInPast    = errors.New("fire-at must be in the future")
	ErrQueueFull       = errors.New("dispatch queue is at capacity")
)
