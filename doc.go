// Package safeaction builds validated actions: functions that check their
// input against one or more schemas, run an ordered middleware chain that
// accumulates a context, and then call the wrapped handler.
//
// A Builder is an immutable value. Schema and Use return a new Builder, so a
// base builder can be shared and specialized freely:
//
//	base := safeaction.New(safeaction.WithName("users"))
//
//	authed := base.Use(func(ctx context.Context, req safeaction.MiddlewareRequest) (safeaction.Ctx, error) {
//	    user, err := currentUser(ctx)
//	    if err != nil {
//	        return safeaction.Ctx{}, err
//	    }
//	    return req.Next(ctx, safeaction.Patch{"user": user})
//	})
//
//	create := safeaction.Action(authed.Schema(userSchema),
//	    func(ctx context.Context, req safeaction.Request) (*User, error) {
//	        user, _ := safeaction.Get[*User](req.Ctx, "user")
//	        return store.Create(ctx, user, req.ParsedInput)
//	    })
//
//	u, err := create(ctx, map[string]any{"name": "Ann"})
//
// # Validators
//
// A validator is any value implementing one of the protocols in package
// schema: ParseAsync, Parse or Standard, probed in that order. With several
// validators each one runs against the same input and object outputs are
// merged, later keys winning. Objects are string-keyed maps; struct outputs
// are not merged, and without any map output the last validator's result
// wins. Form data (url.Values, *multipart.Form or a schema.FormData) is first
// decoded by the first validator that accepts it.
//
// # Errors
//
// Failures are logged once through slog unless WithoutLogging is set.
// Validation failures are returned as *ValidationError with normalized
// issues and a message such as "Input (name) is error: too short". Other
// failures are returned unchanged. WithOnError, WithFormatValidationError and
// WithFormatError customize this; see ErrorContext. A panic in one of these
// callbacks is returned as an error wrapping ErrPanic.
//
// Panics raised by validators, middleware or the handler are returned as
// errors wrapping ErrPanic.
package safeaction
