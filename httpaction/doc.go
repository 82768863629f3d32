// Package httpaction exposes safeaction actions as HTTP handlers.
//
// Handler reads the action input from the request, calls the action and
// renders the result as JSON:
//
//	create := safeaction.Action(builder, createUser)
//
//	r := chi.NewRouter()
//	r.Post("/users", httpaction.Handler(create, httpaction.WithStatus(http.StatusCreated)))
//
// # Input
//
// The input passed to the action depends on the request:
//
//   - application/json bodies are decoded into any (objects become map[string]any),
//     up to DefaultMaxJSONSize bytes unless WithMaxJSONSize says otherwise
//   - application/x-www-form-urlencoded bodies are passed as url.Values
//   - multipart/form-data bodies are passed as *multipart.Form
//   - requests without a body pass their query string as url.Values, or nil
//
// Form inputs are form data as far as safeaction is concerned, so a
// form.Map or form.Struct validator decodes them.
//
// # Output
//
// Successful calls render {"data": ...}. Failures render
// {"error": {"code": ..., "message": ..., "issues": [...]}} with status 422 for
// *safeaction.ValidationError, 400 or 415 for unreadable requests, 413 for
// oversized JSON bodies, the status
// of an *Error, and 500 for anything else. Messages of unexpected errors are
// not disclosed.
//
// Every request gets an ID, taken from a valid X-Request-ID header or
// generated, echoed in the response and available through RequestID.
package httpaction
