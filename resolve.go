package safeaction

import (
	"context"
	"maps"
	"reflect"
	"slices"

	"github.com/dmitrymomot/safeaction/schema"
)

// resolveInput validates raw against chain.
//
// Form-like input is first offered to each validator in order; the first one
// that accepts it decodes the form and leaves the chain. The remaining
// validators run against the same working input and object outputs are merged
// in chain order, later keys winning. Only string-keyed maps are objects:
// structs, such as the output of form.Struct, are not merged, so when no
// validator returns a map the last output is the result and earlier ones are
// dropped.
func resolveInput(ctx context.Context, chain []schema.Adapter, raw any) (any, error) {
	if len(chain) == 0 {
		return raw, nil
	}

	working, input := chain, raw
	if schema.IsFormData(raw) {
		for i, a := range chain {
			if decoded, ok := a.Probe(ctx, raw); ok {
				working = slices.Delete(slices.Clone(chain), i, i+1)
				input = decoded
				break
			}
		}
	}

	switch len(working) {
	case 0:
		return input, nil
	case 1:
		return working[0].Invoke(ctx, input)
	}

	var (
		merged  map[string]any
		lastAny any
	)
	for _, a := range working {
		out, err := a.Invoke(ctx, input)
		if err != nil {
			return nil, err
		}
		if obj, ok := plainObject(out); ok {
			if merged == nil {
				merged = make(map[string]any, len(obj))
			}
			maps.Copy(merged, obj)
			continue
		}
		lastAny = out
	}

	if merged != nil {
		return merged, nil
	}
	return lastAny, nil
}

// plainObject reports whether v is a non-nil map keyed by strings and returns
// its entries.
func plainObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, m != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}
