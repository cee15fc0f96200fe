package services

import "errors"

var (
	// ErrNotFound signals that no trained Pokemon exists with the
	// requested ID.
	ErrNotFound = errors.New("trained pokemon not found")

	// ErrInvalidInput signals a payload that fails domain validation
	// beyond what the schema expresses, such as IVs outside 0-31.
	ErrInvalidInput = errors.New("invalid input")
)
