package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Action records the action name under the key "action".
// If name is empty, it returns an empty Attr.
func Action(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("action", name)
}

// Phase records the pipeline phase under the key "phase".
func Phase(phase string) slog.Attr {
	return slog.String("phase", phase)
}

// InvocationID records the invocation identifier under the key "invocation_id".
// If id is empty, it returns an empty Attr.
func InvocationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("invocation_id", id)
}

// IssueCount records the number of validation issues under the key "issue_count".
func IssueCount(n int) slog.Attr {
	return slog.Int("issue_count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
