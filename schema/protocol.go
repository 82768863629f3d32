package schema

import (
	"context"

	"github.com/dmitrymomot/safeaction/pkg/async"
)

// Parser is a synchronous validator that fails by returning an error.
type Parser interface {
	Parse(input any) (any, error)
}

// AsyncParser is a validator whose result becomes available later.
type AsyncParser interface {
	ParseAsync(ctx context.Context, input any) *async.Future[any]
}

// SafeResult is the outcome of a non-failing parse.
type SafeResult struct {
	Success bool
	Data    any
}

// SafeParser is a non-failing synchronous probe.
type SafeParser interface {
	SafeParse(input any) SafeResult
}

// SafeAsyncParser is a non-failing asynchronous probe.
type SafeAsyncParser interface {
	SafeParseAsync(ctx context.Context, input any) *async.Future[SafeResult]
}
