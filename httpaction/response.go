package httpaction

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/safeaction"
)

// Envelope is the JSON body written by Handler.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Issues  []safeaction.Issue `json:"issues,omitempty"`
}

const internalErrorMessage = "An error occurred processing your request"

func writeJSON(w http.ResponseWriter, status int, body Envelope) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// Classify maps err to a status code and a public error detail.
func Classify(err error) (int, *ErrorDetail) {
	var verr *safeaction.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    string(verr.Code),
			Message: verr.Message,
			Issues:  verr.Issues,
		}
	}

	var herr *Error
	if errors.As(err, &herr) {
		code := herr.Code
		if code == "" {
			code = http.StatusText(herr.Status)
		}
		return herr.Status, &ErrorDetail{Code: code, Message: herr.Message}
	}

	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, &ErrorDetail{Code: "PAYLOAD_TOO_LARGE", Message: err.Error()}
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, &ErrorDetail{Code: "UNSUPPORTED_MEDIA_TYPE", Message: err.Error()}
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest, &ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}
	}

	code := string(safeaction.CodeAction)
	var aerr *safeaction.ActionError
	if errors.As(err, &aerr) {
		code = string(aerr.Code)
	}
	return http.StatusInternalServerError, &ErrorDetail{Code: code, Message: internalErrorMessage}
}

// logLevel maps HTTP status codes to log levels.
func logLevel(status int) slog.Level {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
