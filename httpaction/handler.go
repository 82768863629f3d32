package httpaction

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/safeaction"
	"github.com/dmitrymomot/safeaction/pkg/logger"
)

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures Handler.
type Option func(*config)

type config struct {
	status       int
	maxMemory    int64
	maxJSONSize  int64
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// WithStatus sets the status code of successful responses.
func WithStatus(status int) Option {
	return func(c *config) {
		if status > 0 {
			c.status = status
		}
	}
}

// WithMaxMemory sets the memory limit for parsing multipart forms.
func WithMaxMemory(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// WithMaxJSONSize sets the maximum size of JSON request bodies.
func WithMaxJSONSize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxJSONSize = n
		}
	}
}

// WithErrorHandler replaces the JSON error rendering.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithLogger sets the logger for request errors. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Handler converts an action into an http.HandlerFunc.
func Handler[R any](fn safeaction.ActionFunc[R], opts ...Option) http.HandlerFunc {
	if fn == nil {
		panic("httpaction: nil action")
	}

	cfg := newConfig(opts)
	if cfg.errorHandler == nil {
		cfg.errorHandler = jsonErrorHandler(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := requestIDFrom(r)
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(withRequest(r.Context(), r, id))

		input, err := readInput(r, cfg)
		if err != nil {
			cfg.errorHandler(w, r, err)
			return
		}

		res, err := fn(r.Context(), input)
		if err != nil {
			cfg.errorHandler(w, r, err)
			return
		}

		if err := writeJSON(w, cfg.status, Envelope{Data: res}); err != nil {
			cfg.log().ErrorContext(r.Context(), "failed to write response",
				logger.Error(err),
				logger.Component("httpaction"),
			)
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		status:      http.StatusOK,
		maxMemory:   DefaultMaxMemory,
		maxJSONSize: DefaultMaxJSONSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

func jsonErrorHandler(cfg *config) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, detail := Classify(err)

		cfg.log().LogAttrs(r.Context(), logLevel(status), "request error",
			logger.RequestID(RequestID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("httpaction"),
		)

		if werr := writeJSON(w, status, Envelope{Error: detail}); werr != nil {
			cfg.log().ErrorContext(r.Context(), "failed to write error response",
				logger.Error(werr),
				logger.Component("httpaction"),
			)
		}
	}
}
