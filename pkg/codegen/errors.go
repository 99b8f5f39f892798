package codegen

import "errors"

var (
	// ErrInvalidConfig is returned when a generator shape cannot produce valid codes.
	ErrInvalidConfig = errors.New("invalid code generator configuration")
)
