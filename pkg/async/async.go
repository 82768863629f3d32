package async

import (
	"context"
	"fmt"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	if f == nil {
		var zero U
		return zero, ErrNilFuture
	}
	<-f.done
	return f.result, f.err
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	if f == nil {
		return false
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents doing work for a caller that already gave up
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result = zero
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Go is Async without a parameter.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	return Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (U, error) {
		return fn(ctx)
	})
}

// Resolved returns a completed Future holding v.
func Resolved[U any](v U) *Future[U] {
	f := &Future[U]{result: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// Rejected returns a completed Future holding err.
func Rejected[U any](err error) *Future[U] {
	f := &Future[U]{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}
