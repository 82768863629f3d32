package safeaction

import (
	"context"
	"maps"
	"slices"
)

// Patch is a partial context merged shallowly into the accumulated context.
type Patch map[string]any

// Ctx is a read-only snapshot of the action context. The zero value is empty.
type Ctx struct {
	values map[string]any
}

// NewCtx returns a snapshot holding a copy of values.
func NewCtx(values map[string]any) Ctx {
	return Ctx{values: maps.Clone(values)}
}

// Get returns the value stored under key.
func (c Ctx) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value stored under key or nil.
func (c Ctx) Value(key string) any {
	return c.values[key]
}

func (c Ctx) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

func (c Ctx) Len() int {
	return len(c.values)
}

// Keys returns the keys in sorted order.
func (c Ctx) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Map returns a copy of the snapshot. It is never nil.
func (c Ctx) Map() map[string]any {
	m := make(map[string]any, len(c.values))
	maps.Copy(m, c.values)
	return m
}

// With returns a new snapshot with patch merged over c.
func (c Ctx) With(patch Patch) Ctx {
	m := c.Map()
	maps.Copy(m, patch)
	return Ctx{values: m}
}

// Get returns the value stored under key if it has type T.
func Get[T any](c Ctx, key string) (T, bool) {
	v, ok := c.values[key].(T)
	return v, ok
}

type invocationKey struct{}

// InvocationIDFromContext returns the id of the invocation running with ctx.
func InvocationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}

func withInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}
