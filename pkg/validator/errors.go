package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotObject is reported when an object schema receives a non-object input.
	ErrNotObject = errors.New("expected an object")
)
