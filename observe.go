package safeaction

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/safeaction/pkg/metrics"
)

const defaultActionName = "action"

var noopTracer = noop.NewTracerProvider().Tracer("github.com/dmitrymomot/safeaction")

// observation tracks one invocation for tracing and metrics.
type observation struct {
	name    string
	start   time.Time
	span    trace.Span
	metrics *metrics.Collector
}

func (o Options) actionName() string {
	if o.Name != "" {
		return o.Name
	}
	return defaultActionName
}

func (o Options) observe(ctx context.Context, id string) (context.Context, *observation) {
	tracer := o.Tracer
	if tracer == nil {
		tracer = noopTracer
	}

	name := o.actionName()
	ctx, span := tracer.Start(ctx, "safeaction."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("safeaction.action", name),
			attribute.String("safeaction.invocation_id", id),
		),
	)

	return ctx, &observation{
		name:    name,
		start:   time.Now(),
		span:    span,
		metrics: o.Metrics,
	}
}

func (ob *observation) elapsed() time.Duration {
	return time.Since(ob.start)
}

func (ob *observation) phase(p Phase) {
	ob.span.AddEvent(string(p))
}

func (ob *observation) fail(p Phase, err error) {
	issues := 0
	if IsValidationError(err) {
		issues = len(NormalizeIssues(err))
	}

	ob.span.SetAttributes(attribute.String("safeaction.phase", string(p)))
	ob.span.RecordError(err)
	ob.span.SetStatus(codes.Error, err.Error())
	ob.span.End()

	ob.metrics.Observe(ob.name, string(p), true, ob.elapsed(), issues)
}

func (ob *observation) success() {
	ob.span.SetStatus(codes.Ok, "")
	ob.span.End()

	ob.metrics.Observe(ob.name, "", false, ob.elapsed(), 0)
}
