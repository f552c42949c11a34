package weekwindow

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks every caller contract violation raised by this package.
var ErrInvalidArgument = errors.New("invalid argument")

type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidArgument, e.Field, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(field, msg string) error {
	return &ArgumentError{Field: field, Message: msg}
}
