package safeaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Request is what a handler receives.
type Request struct {
	// Input is the raw value the action was called with.
	Input any
	// ParsedInput is the result of the validator chain.
	ParsedInput any
	// Ctx is the context produced by the middleware chain.
	Ctx Ctx
}

// HandlerFunc is the business logic wrapped by an action.
type HandlerFunc[R any] func(ctx context.Context, req Request) (R, error)

// ActionFunc is a validated action. input may be nil, a plain value or form data.
type ActionFunc[R any] func(ctx context.Context, input any) (R, error)

// Action snapshots b and wraps h. Each call validates input, runs the
// middleware chain and then h. Any failure goes through the error handling
// configured on b.
func Action[R any](b Builder, h HandlerFunc[R]) ActionFunc[R] {
	if h == nil {
		panic("safeaction: nil handler")
	}

	var (
		schemas     = b.schemas.slice()
		middlewares = b.middlewares.slice()
		base        = b.base
		opts        = b.opts
	)

	return func(ctx context.Context, input any) (R, error) {
		var zero R
		if ctx == nil {
			ctx = context.Background()
		}

		id := uuid.NewString()
		ctx = withInvocationID(ctx, id)
		ctx, obs := opts.observe(ctx, id)

		var (
			phase  = PhaseValidation
			parsed any
			actx   Ctx
		)

		fail := func(err error) (_ R, ferr error) {
			defer func() {
				if r := recover(); r != nil {
					ferr = fmt.Errorf("%w while reporting %s failure: %v", ErrPanic, phase, r)
				}
			}()

			obs.fail(phase, err)
			return zero, opts.handleFailure(ctx, failure{
				phase:       phase,
				err:         err,
				id:          id,
				input:       input,
				parsedInput: parsed,
				ctx:         actx,
				elapsed:     obs.elapsed(),
			})
		}

		obs.phase(phase)
		parsed, err := guard(phase, func() (any, error) {
			return resolveInput(ctx, schemas, input)
		})
		if err != nil {
			return fail(err)
		}

		phase = PhaseMiddleware
		obs.phase(phase)
		actx, err = guard(phase, func() (Ctx, error) {
			return runMiddleware(ctx, middlewares, base, parsed)
		})
		if err != nil {
			return fail(err)
		}

		phase = PhaseHandler
		obs.phase(phase)
		res, err := guard(phase, func() (R, error) {
			return h(ctx, Request{Input: input, ParsedInput: parsed, Ctx: actx})
		})
		if err != nil {
			return fail(err)
		}

		obs.success()
		return res, nil
	}
}

// guard runs fn and converts a panic into an error wrapping ErrPanic.
func guard[T any](phase Phase, fn func() (T, error)) (res T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			res = zero
			err = fmt.Errorf("%w in %s: %v", ErrPanic, phase, r)
		}
	}()
	return fn()
}
