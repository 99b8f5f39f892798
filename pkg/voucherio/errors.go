package voucherio

import "errors"

var (
	// ErrInvalidDocument is returned when the top level is not a sequence.
	ErrInvalidDocument = errors.New("voucher document must be a list of records")
	// ErrInvalidRecord is returned for a record that is not a flat mapping of scalars.
	ErrInvalidRecord = errors.New("invalid voucher record")
	// ErrUnknownFormat is returned for file extensions other than .yaml, .yml and .json.
	ErrUnknownFormat = errors.New("unknown voucher file format")
)
