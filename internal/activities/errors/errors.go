package errors

import "errors"

var (
	ErrNotFound = errors.New("activity not found")

	ErrInvalidID = errors.New("invalid activity ID format")

	ErrInsufficientSpaces = errors.New("not enough spaces left on activity")
)
