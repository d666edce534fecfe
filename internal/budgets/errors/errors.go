package errors

import "errors"

var (
	ErrNotFound = errors.New("budget not found")

	ErrInvalidID = errors.New("invalid budget ID format")
)
