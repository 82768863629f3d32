package safeaction

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// TypedFunc is a handler that receives the parsed input as T.
type TypedFunc[T, R any] func(ctx context.Context, input T, actx Ctx) (R, error)

// Typed adapts fn to a HandlerFunc. The parsed input is converted with Decode;
// a conversion failure is reported as a handler error wrapping ErrDecodeInput.
func Typed[T, R any](fn TypedFunc[T, R]) HandlerFunc[R] {
	if fn == nil {
		panic("safeaction: nil typed handler")
	}
	return func(ctx context.Context, req Request) (R, error) {
		in, err := Decode[T](req.ParsedInput)
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(ctx, in, req.Ctx)
	}
}

// Decode converts v to T. Values already of type T are returned as is; other
// values are converted through their JSON encoding, which covers merged maps
// decoded into structs.
func Decode[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var out T
	if v == nil {
		return out, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %T into %T: %w", ErrDecodeInput, v, out, err)
	}
	return out, nil
}
