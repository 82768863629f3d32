// Package async provides a small generic Future type used to model values that
// become available later, such as the result of an asynchronous schema parse.
//
// A Future is obtained from Async, which runs the supplied function in its own
// goroutine, or from Resolved and Rejected, which return futures that are
// already complete. The caller waits for the outcome with Await or polls the
// state with IsComplete.
//
// # Usage
//
//	fut := async.Async(ctx, input, func(ctx context.Context, in any) (any, error) {
//		return lookup(ctx, in)
//	})
//
//	// do other work …
//	res, err := fut.Await()
//
// # Error Handling
//
// Await returns the error produced by the callback. A context cancelled before
// the callback starts completes the future with ctx.Err(). A panic inside the
// callback is recovered and reported as ErrPanic. Awaiting a nil future returns
// ErrNilFuture.
package async
