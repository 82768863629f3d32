// Package metrics records Prometheus metrics for action invocations.
//
// A Collector owns three metrics:
//
//   - actions_invocations_total{action, outcome, phase} – one increment per
//     invocation. outcome is "success" or "failure"; phase is the phase the
//     invocation failed in, or "none" on success.
//   - actions_duration_seconds{action, outcome} – invocation latency.
//   - actions_validation_issues_total{action} – number of normalized issues
//     reported by validation failures.
//
// Usage:
//
//	collector, err := metrics.New(prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := safeaction.New(safeaction.WithMetrics(collector))
package metrics
