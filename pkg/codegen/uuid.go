package codegen

import (
	"github.com/google/uuid"
)

// UUID generates random version 4 UUID codes.
type UUID struct{}

// NewUUID returns a generator producing canonical UUID strings.
func NewUUID() UUID {
	return UUID{}
}

// Part returns the first 8 hex characters of a fresh UUID.
func (UUID) Part() string {
	return uuid.NewString()[:8]
}

func (UUID) Generate() string {
	return uuid.NewString()
}

// Validate accepts canonical 36-character UUID strings only; the URN and
// braced forms that uuid.Parse tolerates are rejected.
func (UUID) Validate(code string) bool {
	if len(code) != 36 {
		return false
	}
	_, err := uuid.Parse(code)
	return err == nil
}
