package safeaction

import (
	"context"
	"maps"
)

// NextFunc merges patch into the accumulated context and runs the rest of the
// chain. It returns the context as of the end of the chain. patch may be nil.
type NextFunc func(ctx context.Context, patch Patch) (Ctx, error)

// MiddlewareRequest is passed to every middleware step.
type MiddlewareRequest struct {
	// Input is the parsed input.
	Input any
	// Ctx is the context as it stood when the step began.
	Ctx Ctx
	// Next continues the chain.
	Next NextFunc
}

// Middleware transforms the action context. A middleware that returns without
// calling Next stops the chain and its returned Ctx becomes final.
type Middleware func(ctx context.Context, req MiddlewareRequest) (Ctx, error)

// Provide returns a middleware that merges patch and continues.
func Provide(patch Patch) Middleware {
	return func(ctx context.Context, req MiddlewareRequest) (Ctx, error) {
		return req.Next(ctx, patch)
	}
}

// runMiddleware executes chain in order starting from base.
func runMiddleware(ctx context.Context, chain []Middleware, base Ctx, input any) (Ctx, error) {
	acc := base.Map()
	cursor := 0

	var next NextFunc
	next = func(ctx context.Context, patch Patch) (Ctx, error) {
		maps.Copy(acc, patch)
		if cursor >= len(chain) {
			return NewCtx(acc), nil
		}

		mw := chain[cursor]
		cursor++
		return mw(ctx, MiddlewareRequest{
			Input: input,
			Ctx:   NewCtx(acc),
			Next:  next,
		})
	}

	return next(ctx, nil)
}
