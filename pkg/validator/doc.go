// Package validator provides declarative object schemas built from small,
// composable rules. Schemas implement the validator protocols of package
// schema and can be passed to safeaction.Builder.Schema directly.
//
// A Rule pairs a Check function with translation-friendly error metadata.
// Field rules (FieldRule) build a Rule for a concrete value at validation
// time, so the same schema can be reused across calls.
//
// # Usage
//
//	signup := validator.Object(
//	    validator.Field("email", validator.Required(), validator.Email()),
//	    validator.Field("name", validator.Required(), validator.MinLen(2), validator.MaxLen(50)),
//	    validator.Field("age", validator.Min(18)),
//	)
//
//	out, err := signup.Parse(map[string]any{"email": "ann@example.com", "name": "Ann"})
//
// Failures are reported as ValidationErrors. Each ValidationError exposes its
// path and message through IssuePath and IssueMessage.
//
// Object schemas implement Parse and SafeParse. Use AsStandard or AsAsync to
// expose the same schema through the standard or async protocol only.
package validator
