package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with a unique field.
	ErrConflict = errors.New("conflict")
	// ErrInvalidStatus is returned for booking states outside the known set.
	ErrInvalidStatus = errors.New("invalid booking status")
)
