package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("entry not found")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store is closed")

	// ErrInvalidID indicates the provided ID is invalid.
	ErrInvalidID = errors.New("invalid entry ID")
)

// NotFoundError wraps ErrNotFound with entry details.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("decode entry not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
