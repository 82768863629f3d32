package schema

import (
	"context"
	"fmt"
)

// Kind identifies the protocol an Adapter dispatches through.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindAsync
	KindSync
	KindStandard
)

func (k Kind) String() string {
	switch k {
	case KindAsync:
		return "async"
	case KindSync:
		return "sync"
	case KindStandard:
		return "standard"
	default:
		return "unsupported"
	}
}

// Adapter is a validator with its dispatch strategy resolved.
// The zero value is an unsupported adapter.
type Adapter struct {
	schema    any
	kind      Kind
	async     AsyncParser
	sync      Parser
	standard  StandardProps
	safeSync  SafeParser
	safeAsync SafeAsyncParser
}

// Adapt probes v for the supported protocols once.
func Adapt(v any) Adapter {
	a := Adapter{schema: v}
	a.safeAsync, _ = v.(SafeAsyncParser)
	a.safeSync, _ = v.(SafeParser)

	if p, ok := v.(AsyncParser); ok {
		a.kind, a.async = KindAsync, p
		return a
	}
	if p, ok := v.(Parser); ok {
		a.kind, a.sync = KindSync, p
		return a
	}
	if s, ok := v.(StandardSchema); ok {
		if props := s.Standard(); props.Validate != nil {
			a.kind, a.standard = KindStandard, props
		}
	}
	return a
}

// Kind returns the resolved protocol.
func (a Adapter) Kind() Kind {
	return a.kind
}

// Schema returns the adapted validator.
func (a Adapter) Schema() any {
	return a.schema
}

// Invoke runs the validator against input. Errors from the validator are
// returned unchanged.
func (a Adapter) Invoke(ctx context.Context, input any) (any, error) {
	switch a.kind {
	case KindAsync:
		return a.async.ParseAsync(ctx, input).Await()
	case KindSync:
		return a.sync.Parse(input)
	case KindStandard:
		return validateStandard(ctx, a.standard, input)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSchema, a.schema)
	}
}

// Probe runs the validator without failing. It prefers the safe probes and
// falls back to Invoke, mapping any failure, including a panic, to false.
func (a Adapter) Probe(ctx context.Context, input any) (v any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, false
		}
	}()

	switch {
	case a.safeAsync != nil:
		res, err := a.safeAsync.SafeParseAsync(ctx, input).Await()
		if err != nil || !res.Success {
			return nil, false
		}
		return res.Data, true
	case a.safeSync != nil:
		res := a.safeSync.SafeParse(input)
		if !res.Success {
			return nil, false
		}
		return res.Data, true
	}

	out, err := a.Invoke(ctx, input)
	if err != nil {
		return nil, false
	}
	return out, true
}
