package schema

import "errors"

var (
	// ErrUnsupportedSchema is returned when a validator implements none of the
	// supported protocols. It signals a misconfigured chain, not bad input.
	ErrUnsupportedSchema = errors.New("schema: unsupported schema")

	// ErrValidationFailed is the sentinel wrapped by IssuesError.
	ErrValidationFailed = errors.New("schema: validation failed")
)
