package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// PhaseNone is the phase label recorded for successful invocations.
const PhaseNone = "none"

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace prefixes every metric name.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithBuckets overrides the duration histogram buckets, in seconds.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// Collector records invocation metrics.
type Collector struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	issues      *prometheus.CounterVec
}

// New creates a Collector and registers it with reg. Metrics already
// registered by another Collector with the same namespace are reused.
func New(reg prometheus.Registerer, opts ...Option) (*Collector, error) {
	o := options{
		buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "actions_invocations_total",
			Help:      "The total number of action invocations",
		}, []string{"action", "outcome", "phase"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "actions_duration_seconds",
			Help:      "The time it takes to run an action, in seconds",
			Buckets:   o.buckets,
		}, []string{"action", "outcome"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "actions_validation_issues_total",
			Help:      "The total number of validation issues reported by actions",
		}, []string{"action"}),
	}

	if reg == nil {
		return c, nil
	}

	var err error
	c.invocations, err = register(reg, c.invocations)
	if err != nil {
		return nil, err
	}
	c.duration, err = register(reg, c.duration)
	if err != nil {
		return nil, err
	}
	c.issues, err = register(reg, c.issues)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// Observe records one invocation. phase is ignored for successful invocations.
func (c *Collector) Observe(action, phase string, failed bool, d time.Duration, issues int) {
	if c == nil {
		return
	}

	outcome := OutcomeSuccess
	if failed {
		outcome = OutcomeFailure
	} else {
		phase = PhaseNone
	}

	c.invocations.WithLabelValues(action, outcome, phase).Inc()
	c.duration.WithLabelValues(action, outcome).Observe(d.Seconds())
	if issues > 0 {
		c.issues.WithLabelValues(action).Add(float64(issues))
	}
}
