package httpaction

import (
	"errors"
	"net/http"
)

var (
	ErrUnsupportedMediaType = errors.New("httpaction: unsupported media type")
	ErrInvalidJSON          = errors.New("httpaction: failed to parse JSON request body")
	ErrInvalidForm          = errors.New("httpaction: failed to parse form data")
	ErrBodyTooLarge         = errors.New("httpaction: request body too large")
)

// Error is an error carrying an HTTP status and a public code and message.
// Return it from an action, for example through safeaction.WithFormatError,
// to control the response.
type Error struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

// NewError creates an Error. An empty message defaults to the status text.
func NewError(status int, code, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
