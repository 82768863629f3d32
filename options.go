package safeaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/safeaction/pkg/logger"
	"github.com/dmitrymomot/safeaction/pkg/metrics"
)

// ErrorHook observes or replaces a failure. Returning a non-nil error replaces
// the error that would otherwise be returned to the caller.
type ErrorHook func(ctx context.Context, ec ErrorContext) error

// ErrorFormatter converts a failure into the error returned to the caller.
// Returning nil keeps the default behavior.
type ErrorFormatter func(ctx context.Context, ec ErrorContext) error

// Options holds the builder configuration. Zero values mean the default.
type Options struct {
	Name           string
	Logger         *slog.Logger
	DisableLogging bool

	OnError               ErrorHook
	FormatValidationError ErrorFormatter
	FormatError           ErrorFormatter

	IncludeInputInErrorDetails bool

	BaseContext map[string]any

	Metrics *metrics.Collector
	Tracer  trace.Tracer
}

// Option configures a Builder.
type Option func(*Options)

// WithName labels logs, metrics and spans produced by the action.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithLogger sets the logger that receives failed invocations.
// A nil logger restores slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
		o.DisableLogging = false
	}
}

// WithoutLogging suppresses failure logging.
func WithoutLogging() Option {
	return func(o *Options) { o.DisableLogging = true }
}

// WithOnError registers a hook that runs for every failure before formatting.
func WithOnError(fn ErrorHook) Option {
	return func(o *Options) { o.OnError = fn }
}

// WithFormatValidationError overrides the error returned for validation failures.
func WithFormatValidationError(fn ErrorFormatter) Option {
	return func(o *Options) { o.FormatValidationError = fn }
}

// WithFormatError overrides the error returned for non-validation failures.
func WithFormatError(fn ErrorFormatter) Option {
	return func(o *Options) { o.FormatError = fn }
}

// WithInputInErrorDetails attaches the raw input, parsed input and context
// to error contexts and built-in validation errors.
func WithInputInErrorDetails() Option {
	return func(o *Options) { o.IncludeInputInErrorDetails = true }
}

// WithBaseContext sets the context every middleware chain starts from.
func WithBaseContext(values map[string]any) Option {
	return func(o *Options) { o.BaseContext = values }
}

// WithMetrics records invocation metrics into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) { o.Metrics = c }
}

// WithTracer creates a span per invocation with t.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) { o.Tracer = t }
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// failure is the state of a failed invocation.
type failure struct {
	phase       Phase
	err         error
	id          string
	input       any
	parsedInput any
	ctx         Ctx
	elapsed     time.Duration
}

// handleFailure logs f once, classifies it and returns the error for the caller.
func (o Options) handleFailure(ctx context.Context, f failure) error {
	validation := IsValidationError(f.err)

	if !o.DisableLogging {
		attrs := []slog.Attr{
			logger.Error(f.err),
			logger.Phase(string(f.phase)),
			logger.Action(o.Name),
			logger.InvocationID(f.id),
			logger.Duration(f.elapsed),
		}
		if validation {
			attrs = append(attrs, logger.IssueCount(len(NormalizeIssues(f.err))))
		}
		o.logger().LogAttrs(ctx, slog.LevelError, "safe action failed", attrs...)
	}

	ec := ErrorContext{
		Phase:        f.phase,
		Err:          f.err,
		Action:       o.Name,
		InvocationID: f.id,
	}
	if o.IncludeInputInErrorDetails {
		ec.Details = &ErrorDetails{Input: f.input, ParsedInput: f.parsedInput, Ctx: f.ctx}
	}

	if validation {
		ec.Validation = true
		ec.Issues = NormalizeIssues(f.err)
		ec.Message = ValidationMessage(ec.Issues, f.err)

		if err := callHook(ctx, "OnError", o.OnError, ec); err != nil {
			return err
		}
		if err := callHook(ctx, "FormatValidationError", ErrorHook(o.FormatValidationError), ec); err != nil {
			return err
		}
		return &ValidationError{
			ActionError: ActionError{
				Code:    CodeValidation,
				Phase:   f.phase,
				Message: ec.Message,
				Cause:   f.err,
				Data:    ec.Details,
			},
			Issues: ec.Issues,
		}
	}

	if err := callHook(ctx, "OnError", o.OnError, ec); err != nil {
		return err
	}
	if err := callHook(ctx, "FormatError", ErrorHook(o.FormatError), ec); err != nil {
		return err
	}
	return f.err
}

// callHook runs fn if set. A panic becomes an error wrapping ErrPanic, which
// then replaces the failure like any other hook error.
func callHook(ctx context.Context, name string, fn ErrorHook, ec ErrorContext) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w in %s: %v", ErrPanic, name, r)
		}
	}()
	return fn(ctx, ec)
}
