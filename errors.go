package safeaction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPanic wraps a value recovered from a panicking validator, middleware or handler.
	ErrPanic = errors.New("safeaction: panic recovered")

	// ErrDecodeInput is returned by Typed handlers when the parsed input cannot
	// be converted to the handler's input type.
	ErrDecodeInput = errors.New("safeaction: cannot decode parsed input")
)

// Phase is the pipeline step an invocation is in.
type Phase string

const (
	PhaseValidation Phase = "validation"
	PhaseMiddleware Phase = "middleware"
	PhaseHandler    Phase = "handler"
)

// Code classifies errors produced by this package.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeMiddleware Code = "MIDDLEWARE_ERROR"
	CodeHandler    Code = "HANDLER_ERROR"
	CodeAction     Code = "ACTION_ERROR"
)

// Code returns the error code matching the phase, or CodeAction for an unknown phase.
func (p Phase) Code() Code {
	switch p {
	case PhaseValidation:
		return CodeValidation
	case PhaseMiddleware:
		return CodeMiddleware
	case PhaseHandler:
		return CodeHandler
	default:
		return CodeAction
	}
}

// Issue is a normalized validation problem.
type Issue struct {
	// Path locates the offending value. Segments are strings or integers;
	// an empty path means the field is unknown.
	Path []any `json:"path"`
	// Message is the human readable description.
	Message string `json:"message"`
	// Raw is the library-specific issue the entry was built from.
	Raw any `json:"-"`
}

// PathString joins the path segments with dots.
func (i Issue) PathString() string {
	parts := make([]string, len(i.Path))
	for n, seg := range i.Path {
		parts[n] = fmt.Sprint(seg)
	}
	return strings.Join(parts, ".")
}

// ErrorDetails carries the invocation data disclosed with an error.
// It is only populated when WithInputInErrorDetails is set.
type ErrorDetails struct {
	Input       any
	ParsedInput any
	Ctx         Ctx
}

// ActionError is the base error shape produced by this package.
type ActionError struct {
	Code    Code
	Phase   Phase
	Message string
	Cause   error
	Data    *ErrorDetails
}

// NewActionError creates an ActionError whose code is derived from phase.
func NewActionError(phase Phase, message string, cause error) *ActionError {
	return &ActionError{Code: phase.Code(), Phase: phase, Message: message, Cause: cause}
}

func (e *ActionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return string(e.Code)
}

func (e *ActionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ValidationError is the built-in error returned for validation failures.
type ValidationError struct {
	ActionError
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.ActionError.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// As lets errors.As find the embedded ActionError.
func (e *ValidationError) As(target any) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(**ActionError); ok {
		*t = &e.ActionError
		return true
	}
	return false
}

// ErrorContext describes a failed invocation. Message and Issues are set only
// for validation failures. Details is nil unless WithInputInErrorDetails is set.
type ErrorContext struct {
	Phase        Phase
	Err          error
	Action       string
	InvocationID string
	Details      *ErrorDetails

	Validation bool
	Message    string
	Issues     []Issue
}
