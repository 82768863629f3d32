package form

import "errors"

var (
	ErrUnsupportedInput = errors.New("form: input is not form data")
	ErrInvalidForm      = errors.New("form: failed to decode form data")
)
