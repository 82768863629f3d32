package httpaction

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/safeaction"
	"github.com/dmitrymomot/safeaction/pkg/logger"
)

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type (
	requestKey   struct{}
	requestIDKey struct{}
)

func withRequest(ctx context.Context, r *http.Request, id string) context.Context {
	ctx = context.WithValue(ctx, requestKey{}, r)
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Request returns the HTTP request an action is serving, or nil.
func Request(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey{}).(*http.Request)
	return r
}

// RequestID returns the ID of the HTTP request an action is serving.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggerExtractor logs the request ID of the context, for use with
// logger.WithContextExtractors.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := RequestID(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

// requestIDFrom reuses a well-formed client supplied ID.
func requestIDFrom(r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if id == "" || len(id) > maxRequestIDLength || !validRequestID.MatchString(id) {
		return uuid.NewString()
	}
	return id
}

// clientIPHeaders are checked in order before falling back to RemoteAddr.
var clientIPHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// ClientIP returns the client address of r, honoring common proxy headers.
// X-Forwarded-For yields its first valid entry. Invalid values are skipped.
func ClientIP(r *http.Request) string {
	for _, h := range clientIPHeaders {
		for candidate := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

// ProvideRequest returns a middleware adding request details to the action
// context under "request_id", "method", "path" and "client_ip". Outside an
// HTTP request it adds nothing.
func ProvideRequest() safeaction.Middleware {
	return func(ctx context.Context, req safeaction.MiddlewareRequest) (safeaction.Ctx, error) {
		r := Request(ctx)
		if r == nil {
			return req.Next(ctx, nil)
		}
		return req.Next(ctx, safeaction.Patch{
			"request_id": RequestID(ctx),
			"method":     r.Method,
			"path":       r.URL.Path,
			"client_ip":  ClientIP(r),
		})
	}
}
