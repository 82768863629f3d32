package safeaction_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/safeaction/pkg/async"
	"github.com/dmitrymomot/safeaction/pkg/logger"
	"github.com/dmitrymomot/safeaction/schema"
)

var errBoom = errors.New("boom")

// parser is a sync validator.
type parser func(any) (any, error)

func (p parser) Parse(in any) (any, error) { return p(in) }

// asyncParser is an async validator.
type asyncParser func(any) (any, error)

func (p asyncParser) ParseAsync(ctx context.Context, in any) *async.Future[any] {
	return async.Async(ctx, in, func(_ context.Context, v any) (any, error) { return p(v) })
}

// standard is a standard schema validator.
type standard func(any) schema.StandardResult

func (s standard) Standard() schema.StandardProps {
	return schema.StandardProps{
		Version: 1,
		Vendor:  "test",
		Validate: func(_ context.Context, in any) schema.StandardOutcome {
			return schema.Ready(s(in))
		},
	}
}

// constant returns a sync validator that always yields v.
func constant(v any) parser {
	return func(any) (any, error) { return v, nil }
}

// formDecoder accepts url.Values and decodes the name field.
type formDecoder struct{}

func (formDecoder) Parse(in any) (any, error) {
	values, ok := in.(url.Values)
	if !ok {
		return nil, fmt.Errorf("not form data: %T", in)
	}
	return map[string]any{"name": values.Get("name")}, nil
}

func (d formDecoder) SafeParse(in any) schema.SafeResult {
	out, err := d.Parse(in)
	if err != nil {
		return schema.SafeResult{}
	}
	return schema.SafeResult{Success: true, Data: out}
}

// upperName reads name from a map and returns it uppercased under display.
func upperName(in any) (any, error) {
	m, ok := in.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", in)
	}
	name, _ := m["name"].(string)
	return map[string]any{"display": strings.ToUpper(name)}, nil
}

type zodIssue struct {
	Path    []any
	Message string
}

// ZodError mimics the error type of the reference schema library.
type ZodError struct {
	Issues []zodIssue
}

func (e *ZodError) Error() string { return "zod: invalid input" }

// tooShort fails with a single issue at path.
func tooShort(path ...any) parser {
	return func(any) (any, error) {
		return nil, &ZodError{Issues: []zodIssue{{Path: path, Message: "too short"}}}
	}
}

// bufferLogger returns a logger writing JSON lines to the returned buffer.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON)), &buf
}

func countLines(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "\n")
}
