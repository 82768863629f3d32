// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by Option functions. These options
// allow you to:
//
//   - Select an output format (text or json)
//   - Set the minimum log level
//   - Supply default slog.Attr values applied to every record
//   - Register ContextExtractor callbacks that inject attributes pulled from a
//     context value (for example an invocation id) every time Handle is invoked.
//
// # Architecture
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format and wraps it with LogHandlerDecorator, which runs the registered
// ContextExtractor callbacks before delegating to the underlying handler.
//
// Helper constructors such as Error, Phase and Action live in attr.go and keep
// attribute naming consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithContextValue("invocation_id", invocationKey),
//	)
//
//	log.ErrorContext(ctx, "safe action failed",
//	    logger.Action("create-user"),
//	    logger.Phase("validation"),
//	    logger.Error(err),
//	)
//
// # Error Handling
//
// Error produces an attribute only when the supplied error value is non-nil,
// allowing calls like:
//
//	log.Info("operation finished", logger.Error(err))
//
// WithFormat panics on unknown formats. Use ParseFormat to validate untrusted
// input such as environment variables first.
package logger
