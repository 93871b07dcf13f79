// Package service implements the application's business operations over the
// store layer: the user registry and the weeklist lifecycle engine.
package service

import "errors"

// Business-rule errors surfaced by the services. Storage-level conditions
// (not found, duplicates) come from the store package; these cover the
// lifecycle rules on top.
var (
	// ErrInvalidCredentials is returned by Login when the password does not
	// match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrQuotaExceeded is returned when creating a weeklist would push the
	// owner past the open-weeklist cap.
	ErrQuotaExceeded = errors.New("open weeklist quota exceeded")

	// ErrWindowExpired is returned for structural mutations attempted after
	// the 24-hour edit window has closed.
	ErrWindowExpired = errors.New("modification window expired")

	// ErrWeeklistInactive is returned when toggling a task on a weeklist
	// that the sweep has deactivated.
	ErrWeeklistInactive = errors.New("weeklist is inactive")

	// ErrWeeklistCompleted is returned when toggling any task on a weeklist
	// that is already fully completed. Completion is a one-way door: a
	// completed list cannot be reopened through the API.
	ErrWeeklistCompleted = errors.New("weeklist is already completed")

	// ErrTaskNotFound is returned when the referenced task is not part of
	// the weeklist.
	ErrTaskNotFound = errors.New("task not found")
)
