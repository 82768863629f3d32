package schema

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/safeaction/pkg/async"
)

// StandardSchema is implemented by validators following the standard schema
// interface shared across validation libraries.
type StandardSchema interface {
	Standard() StandardProps
}

// StandardProps describes a standard schema.
type StandardProps struct {
	Version  int
	Vendor   string
	Validate func(ctx context.Context, input any) StandardOutcome
	Types    *StandardTypes
}

// StandardTypes optionally records the input and output types of a schema.
type StandardTypes struct {
	Input  reflect.Type
	Output reflect.Type
}

// PathKey is a path segment wrapped in an object, as some libraries report it.
type PathKey struct {
	Key any
}

// StandardIssue is a single problem reported by a standard schema.
type StandardIssue struct {
	Message string
	Path    []any
}

// StandardResult carries either a value or issues.
// A non-nil Issues slice marks the result as failed, even when it is empty.
type StandardResult struct {
	Value  any
	Issues []StandardIssue
}

// Failed reports whether the result carries issues.
func (r StandardResult) Failed() bool {
	return r.Issues != nil
}

// StandardOutcome is the return value of StandardProps.Validate. It is either
// ready or pending on a future.
type StandardOutcome struct {
	result  StandardResult
	pending *async.Future[StandardResult]
}

// Ready wraps an already computed result.
func Ready(r StandardResult) StandardOutcome {
	return StandardOutcome{result: r}
}

// Pending wraps a result that is still being computed.
func Pending(f *async.Future[StandardResult]) StandardOutcome {
	return StandardOutcome{pending: f}
}

// IsPending reports whether the outcome must be awaited.
func (o StandardOutcome) IsPending() bool {
	return o.pending != nil
}

// Await returns the result, waiting for it when pending.
func (o StandardOutcome) Await() (StandardResult, error) {
	if o.pending != nil {
		return o.pending.Await()
	}
	return o.result, nil
}

// IssuesError is returned by Invoke when a standard schema reports issues.
type IssuesError struct {
	issues []StandardIssue
}

// NewIssuesError creates an IssuesError from a list of issues.
func NewIssuesError(issues []StandardIssue) *IssuesError {
	return &IssuesError{issues: issues}
}

func (e *IssuesError) Error() string {
	switch len(e.issues) {
	case 0:
		return ErrValidationFailed.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrValidationFailed, e.issues[0].Message)
	default:
		return fmt.Sprintf("%s: %s (and %d more)", ErrValidationFailed, e.issues[0].Message, len(e.issues)-1)
	}
}

// Issues returns the reported issues.
func (e *IssuesError) Issues() []StandardIssue {
	return e.issues
}

func (e *IssuesError) Unwrap() error {
	return ErrValidationFailed
}

func validateStandard(ctx context.Context, props StandardProps, input any) (any, error) {
	res, err := props.Validate(ctx, input).Await()
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return nil, NewIssuesError(res.Issues)
	}
	return res.Value, nil
}
