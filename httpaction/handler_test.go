package httpaction_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeaction"
	"github.com/dmitrymomot/safeaction/httpaction"
	"github.com/dmitrymomot/safeaction/pkg/validator"
	"github.com/dmitrymomot/safeaction/schema/form"
)

type user struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func signup() *validator.ObjectSchema {
	return validator.Object(
		validator.Field("email", validator.Required(), validator.Email()),
		validator.Field("name", validator.Required(), validator.MinLen(2)),
	)
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	base := safeaction.New(safeaction.WithoutLogging())

	create := safeaction.Action(
		base.Schema(form.Map()).Schema(signup()),
		safeaction.Typed(func(_ context.Context, in user, _ safeaction.Ctx) (user, error) {
			return in, nil
		}),
	)

	whoami := safeaction.Action(
		base.Use(httpaction.ProvideRequest()),
		func(_ context.Context, req safeaction.Request) (map[string]any, error) {
			return map[string]any{
				"request_id": req.Ctx.Value("request_id"),
				"method":     req.Ctx.Value("method"),
				"input":      req.Input,
			}, nil
		},
	)

	fail := base.Action(func(_ context.Context, req safeaction.Request) (any, error) {
		q, _ := req.Input.(url.Values)
		switch q.Get("kind") {
		case "conflict":
			return nil, httpaction.NewError(http.StatusConflict, "CONFLICT", "already exists")
		default:
			return nil, errors.New("database password is hunter2")
		}
	})

	r := chi.NewRouter()
	r.Post("/users", httpaction.Handler(create, httpaction.WithStatus(http.StatusCreated), httpaction.WithLogger(quiet)))
	r.Get("/whoami", httpaction.Handler(whoami, httpaction.WithLogger(quiet)))
	r.Get("/fail", httpaction.Handler(fail, httpaction.WithLogger(quiet)))
	return r
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, httpaction.Envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env httpaction.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHandler(t *testing.T) {
	t.Parallel()

	router := newRouter(t)

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"ann@example.com","name":"Ann"}`))
		req.Header.Set("Content-Type", "application/json")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Nil(t, env.Error)
		assert.Equal(t, map[string]any{"email": "ann@example.com", "name": "Ann"}, env.Data)
	})

	t.Run("urlencoded form", func(t *testing.T) {
		t.Parallel()

		body := url.Values{"email": {"ann@example.com"}, "name": {"Ann"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, map[string]any{"email": "ann@example.com", "name": "Ann"}, env.Data)
	})

	t.Run("multipart form", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("email", "ann@example.com"))
		require.NoError(t, w.WriteField("name", "Ann"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/users", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, map[string]any{"email": "ann@example.com", "name": "Ann"}, env.Data)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"ann@example.com","name":"A"}`))
		req.Header.Set("Content-Type", "application/json")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "Input (name) is error: must be at least 2 characters long", env.Error.Message)
		require.Len(t, env.Error.Issues, 1)
		assert.Equal(t, []any{"name"}, env.Error.Issues[0].Path)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":`))
		req.Header.Set("Content-Type", "application/json")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`<user/>`))
		req.Header.Set("Content-Type", "application/xml")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", env.Error.Code)
	})

	t.Run("query input and request context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/whoami?x=1", nil)
		req.Header.Set(httpaction.RequestIDHeader, "req-123")

		rec, env := do(t, router, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "req-123", rec.Header().Get(httpaction.RequestIDHeader))
		assert.Equal(t, map[string]any{
			"request_id": "req-123",
			"method":     http.MethodGet,
			"input":      map[string]any{"x": []any{"1"}},
		}, env.Data)
	})

	t.Run("invalid request id is replaced", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(httpaction.RequestIDHeader, "bad id!")

		rec, env := do(t, router, req)
		id := rec.Header().Get(httpaction.RequestIDHeader)
		assert.NotEqual(t, "bad id!", id)
		assert.NotEmpty(t, id)

		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, id, data["request_id"])
		assert.Nil(t, data["input"])
	})

	t.Run("unexpected errors are not disclosed", func(t *testing.T) {
		t.Parallel()

		rec, env := do(t, router, httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "ACTION_ERROR", env.Error.Code)
		assert.NotContains(t, rec.Body.String(), "hunter2")
	})

	t.Run("http errors keep their status", func(t *testing.T) {
		t.Parallel()

		rec, env := do(t, router, httptest.NewRequest(http.MethodGet, "/fail?kind=conflict", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "already exists", env.Error.Message)
	})
}

func TestHandler_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	act := safeaction.New(safeaction.WithoutLogging()).Action(func(context.Context, safeaction.Request) (any, error) {
		return nil, errors.New("nope")
	})

	var got error
	h := httpaction.Handler(act, httpaction.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.EqualError(t, got, "nope")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &safeaction.ValidationError{ActionError: safeaction.ActionError{Code: safeaction.CodeValidation}}, 422, "VALIDATION_ERROR"},
		{"action error", safeaction.NewActionError(safeaction.PhaseMiddleware, "denied", nil), 500, "MIDDLEWARE_ERROR"},
		{"http error", httpaction.NewError(http.StatusForbidden, "", ""), 403, "Forbidden"},
		{"bad form", httpaction.ErrInvalidForm, 400, "BAD_REQUEST"},
		{"body too large", fmt.Errorf("%w: %w", httpaction.ErrInvalidJSON, httpaction.ErrBodyTooLarge), 413, "PAYLOAD_TOO_LARGE"},
		{"plain", errors.New("x"), 500, "ACTION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, detail := httpaction.Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestInput(t *testing.T) {
	t.Parallel()

	t.Run("empty json body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		req.Header.Set("Content-Type", "application/json")

		in, err := httpaction.Input(req)
		require.NoError(t, err)
		assert.Nil(t, in)
	})

	t.Run("body without content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("data"))
		_, err := httpaction.Input(req)
		assert.ErrorIs(t, err, httpaction.ErrUnsupportedMediaType)
	})

	t.Run("json body over limit", func(t *testing.T) {
		t.Parallel()

		body := `{"name":"` + strings.Repeat("a", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		_, err := httpaction.Input(req, httpaction.WithMaxJSONSize(32))
		require.ErrorIs(t, err, httpaction.ErrBodyTooLarge)
		assert.ErrorIs(t, err, httpaction.ErrInvalidJSON)
	})

	t.Run("json body at limit", func(t *testing.T) {
		t.Parallel()

		body := `{"name":"abc"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		in, err := httpaction.Input(req, httpaction.WithMaxJSONSize(int64(len(body))))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "abc"}, in)
	})
}

func TestHandler_JSONBodyLimit(t *testing.T) {
	t.Parallel()

	act := safeaction.New(safeaction.WithoutLogging()).Action(func(_ context.Context, req safeaction.Request) (any, error) {
		return req.ParsedInput, nil
	})

	r := chi.NewRouter()
	r.Post("/echo", httpaction.Handler(act,
		httpaction.WithMaxJSONSize(16),
		httpaction.WithLogger(quiet),
	))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"`+strings.Repeat("x", 32)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var env struct {
		Error httpaction.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
}
