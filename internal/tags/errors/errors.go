package errors

import "errors"

var (
	ErrNotFound = errors.New("tag not found")

	ErrInvalidID = errors.New("invalid tag ID format")
)
