package safeaction

import (
	"github.com/dmitrymomot/safeaction/schema"
)

// node is an element of a persistent list. Nodes are never mutated, so
// builders derived from the same parent share their common prefix.
type node[T any] struct {
	value T
	prev  *node[T]
	size  int
}

type list[T any] struct {
	tail *node[T]
}

func (l list[T]) push(v T) list[T] {
	return list[T]{tail: &node[T]{value: v, prev: l.tail, size: l.len() + 1}}
}

func (l list[T]) len() int {
	if l.tail == nil {
		return 0
	}
	return l.tail.size
}

// slice returns the elements in insertion order.
func (l list[T]) slice() []T {
	out := make([]T, l.len())
	for n, i := l.tail, l.len()-1; n != nil; n, i = n.prev, i-1 {
		out[i] = n.value
	}
	return out
}

// Builder configures validated actions. It is an immutable value: Schema and
// Use return a new Builder and leave the receiver untouched, so a Builder can
// be shared and extended freely.
type Builder struct {
	schemas     list[schema.Adapter]
	middlewares list[Middleware]
	base        Ctx
	opts        Options
}

// New creates a Builder with no validators and no middleware.
func New(opts ...Option) Builder {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return Builder{
		base: NewCtx(o.BaseContext),
		opts: o,
	}
}

// Schema appends a validator. Validators implementing none of the supported
// protocols are accepted here and fail every invocation.
func (b Builder) Schema(v any) Builder {
	b.schemas = b.schemas.push(schema.Adapt(v))
	return b
}

// Use appends a middleware. A nil middleware is ignored.
func (b Builder) Use(mw Middleware) Builder {
	if mw == nil {
		return b
	}
	b.middlewares = b.middlewares.push(mw)
	return b
}

// With returns a copy of b with opts applied on top of its options.
func (b Builder) With(opts ...Option) Builder {
	o := b.opts
	for _, opt := range opts {
		opt(&o)
	}
	b.opts = o
	b.base = NewCtx(o.BaseContext)
	return b
}

// Schemas returns the number of configured validators.
func (b Builder) Schemas() int { return b.schemas.len() }

// Middlewares returns the number of configured middleware.
func (b Builder) Middlewares() int { return b.middlewares.len() }

// Options returns the builder options.
func (b Builder) Options() Options { return b.opts }

// Action wraps h using the builder configuration.
func (b Builder) Action(h HandlerFunc[any]) ActionFunc[any] {
	return Action(b, h)
}
