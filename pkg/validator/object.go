package validator

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/safeaction/pkg/async"
	"github.com/dmitrymomot/safeaction/schema"
)

// FieldSchema declares a single object field.
type FieldSchema struct {
	name  string
	rules []FieldRule
}

// Field declares a field validated by rules in order. Validation of a field
// stops at its first failing rule.
func Field(name string, rules ...FieldRule) FieldSchema {
	return FieldSchema{name: name, rules: rules}
}

// ObjectSchema validates map inputs field by field.
type ObjectSchema struct {
	fields []FieldSchema
}

// Object creates a schema from field declarations.
func Object(fields ...FieldSchema) *ObjectSchema {
	return &ObjectSchema{fields: fields}
}

// Validate checks input and returns the declared fields that are present.
// Undeclared keys are dropped.
func (o *ObjectSchema) Validate(input any) (map[string]any, error) {
	m, ok := toObject(input)
	if !ok {
		return nil, ValidationErrors{{
			Message:        ErrNotObject.Error(),
			TranslationKey: "validation.object",
		}}
	}

	var (
		errs ValidationErrors
		out  = make(map[string]any, len(o.fields))
	)
	for _, f := range o.fields {
		value, present := m[f.name]
		missing := !present || value == nil

		for _, r := range f.rules {
			if missing && !r.required {
				continue
			}
			if rule := r.Rule(f.name, value); !rule.Check() {
				errs.Add(rule.Error)
				break
			}
		}

		if !missing {
			out[f.name] = value
		}
	}

	if !errs.IsEmpty() {
		return nil, errs
	}
	return out, nil
}

// Parse implements schema.Parser.
func (o *ObjectSchema) Parse(input any) (any, error) {
	out, err := o.Validate(input)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SafeParse implements schema.SafeParser.
func (o *ObjectSchema) SafeParse(input any) schema.SafeResult {
	out, err := o.Validate(input)
	if err != nil {
		return schema.SafeResult{}
	}
	return schema.SafeResult{Success: true, Data: out}
}

func toObject(input any) (map[string]any, bool) {
	switch m := input.(type) {
	case map[string]any:
		return m, m != nil
	case map[string]string:
		if m == nil {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}
	return nil, false
}

// StandardObject exposes an ObjectSchema through the standard schema protocol only.
type StandardObject struct {
	schema *ObjectSchema
}

// AsStandard wraps o so that it is validated through the standard protocol.
func AsStandard(o *ObjectSchema) StandardObject {
	return StandardObject{schema: o}
}

func (s StandardObject) Standard() schema.StandardProps {
	return schema.StandardProps{
		Version: 1,
		Vendor:  "safeaction/validator",
		Validate: func(_ context.Context, input any) schema.StandardOutcome {
			out, err := s.schema.Validate(input)
			if err == nil {
				return schema.Ready(schema.StandardResult{Value: out})
			}
			return schema.Ready(schema.StandardResult{Issues: standardIssues(err)})
		},
	}
}

func standardIssues(err error) []schema.StandardIssue {
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		return []schema.StandardIssue{{Message: err.Error(), Path: []any{}}}
	}

	issues := make([]schema.StandardIssue, 0, len(verrs))
	for _, e := range verrs {
		path := make([]any, 0, strings.Count(e.Field, ".")+1)
		for _, seg := range e.IssuePath() {
			path = append(path, schema.PathKey{Key: seg})
		}
		issues = append(issues, schema.StandardIssue{Message: e.Message, Path: path})
	}
	return issues
}

// AsyncObject exposes an ObjectSchema through the async protocol only.
type AsyncObject struct {
	schema *ObjectSchema
}

// AsAsync wraps o so that it is validated on its own goroutine.
func AsAsync(o *ObjectSchema) AsyncObject {
	return AsyncObject{schema: o}
}

func (a AsyncObject) ParseAsync(ctx context.Context, input any) *async.Future[any] {
	return async.Async(ctx, input, func(_ context.Context, in any) (any, error) {
		return a.schema.Parse(in)
	})
}
