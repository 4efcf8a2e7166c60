package errors

import "errors"

var (
	ErrDuplicateID = errors.New("order with this _id already exists")
)
