package core

import "errors"

// Errors returned by tessellators and shape constructors. Wrapped errors
// carry the offending value; match them with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrArgumentOutOfRange = errors.New("argument out of range")
)
