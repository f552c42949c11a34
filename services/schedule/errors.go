package schedule

import (
	"errors"

	"shiffy/services/weekwindow"
)

var (
	ErrNotFound             = errors.New("schedule not found")
	ErrNoPreferences        = errors.New("no shift preferences submitted for this week")
	ErrScheduleLocked       = errors.New("schedule for this week is already published")
	ErrGeneratorUnavailable = errors.New("schedule generator is not configured")
)

// invalid reports a bad caller argument; it matches weekwindow.ErrInvalidArgument.
func invalid(field, msg string) error {
	return &weekwindow.ArgumentError{Field: field, Message: msg}
}
