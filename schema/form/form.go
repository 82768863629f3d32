package form

import (
	"fmt"
	"maps"
	"mime/multipart"
	"net/url"

	"github.com/dmitrymomot/safeaction/schema"
)

// extract returns the values and files carried by input.
func extract(input any) (url.Values, map[string][]*multipart.FileHeader, error) {
	switch v := input.(type) {
	case url.Values:
		if v != nil {
			return v, nil, nil
		}
	case *multipart.Form:
		if v != nil {
			return url.Values(v.Value), v.File, nil
		}
	case schema.FormData:
		if values := v.FormValues(); values != nil {
			return values, nil, nil
		}
		return url.Values{}, nil, nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

// MapOption configures Map.
type MapOption func(*MapDecoder)

// WithMultiValue makes every field decode to []string, even single values.
func WithMultiValue() MapOption {
	return func(d *MapDecoder) { d.multi = true }
}

// MapDecoder decodes form data into map[string]any.
type MapDecoder struct {
	multi bool
}

// Map returns a validator decoding form data into map[string]any. Single
// values decode to string and repeated values to []string. Files decode to
// []*multipart.FileHeader. A map[string]any input is returned as a copy, so
// the same chain serves both form and JSON submissions.
func Map(opts ...MapOption) *MapDecoder {
	d := &MapDecoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *MapDecoder) Decode(input any) (map[string]any, error) {
	if m, ok := input.(map[string]any); ok && m != nil {
		return maps.Clone(m), nil
	}

	values, files, err := extract(input)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(values)+len(files))
	for key, vals := range values {
		switch {
		case len(vals) == 0:
			continue
		case len(vals) == 1 && !d.multi:
			out[key] = vals[0]
		default:
			out[key] = append([]string(nil), vals...)
		}
	}
	for key, headers := range files {
		if sanitized := sanitizeHeaders(headers); len(sanitized) > 0 {
			out[key] = sanitized
		}
	}
	return out, nil
}

// Parse implements schema.Parser.
func (d *MapDecoder) Parse(input any) (any, error) {
	out, err := d.Decode(input)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SafeParse implements schema.SafeParser.
func (d *MapDecoder) SafeParse(input any) schema.SafeResult {
	out, err := d.Decode(input)
	if err != nil {
		return schema.SafeResult{}
	}
	return schema.SafeResult{Success: true, Data: out}
}

// StructDecoder binds form data into a T.
type StructDecoder[T any] struct{}

// Struct returns a validator binding form data into T, which must be a struct.
// It panics otherwise.
func Struct[T any]() StructDecoder[T] {
	var zero T
	if _, err := structType(&zero); err != nil {
		panic(err)
	}
	return StructDecoder[T]{}
}

func (StructDecoder[T]) Decode(input any) (T, error) {
	var out T
	values, files, err := extract(input)
	if err != nil {
		return out, err
	}
	if err := bind(&out, values, files); err != nil {
		return out, err
	}
	return out, nil
}

// Parse implements schema.Parser.
func (d StructDecoder[T]) Parse(input any) (any, error) {
	out, err := d.Decode(input)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SafeParse implements schema.SafeParser.
func (d StructDecoder[T]) SafeParse(input any) schema.SafeResult {
	out, err := d.Decode(input)
	if err != nil {
		return schema.SafeResult{}
	}
	return schema.SafeResult{Success: true, Data: out}
}
