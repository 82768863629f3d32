// Package schema adapts opaque validator values to a single invocation contract.
//
// A validator is any value implementing at least one of the supported
// protocols:
//
//   - AsyncParser: ParseAsync returns a future that resolves with the parsed
//     value or fails with an error.
//   - Parser: Parse returns the parsed value or an error.
//   - SafeParser / SafeAsyncParser: non-failing probes reporting success and
//     data. They are optional companions of the protocols above.
//   - StandardSchema: exposes StandardProps whose Validate function returns a
//     ready or pending StandardOutcome carrying either a value or issues.
//
// Adapt inspects a validator once and records which protocol it will be
// dispatched through. When a validator implements several protocols, the
// failing ones (async first, then sync) win over Standard because the error
// they return keeps every detail of the library-specific failure.
//
//	a := schema.Adapt(userSchema)
//	v, err := a.Invoke(ctx, input)
//
// Probe is the non-failing counterpart of Invoke: it reports only whether the
// validator accepted the input.
//
// IsFormData reports whether an input is form-like (url.Values,
// *multipart.Form or a FormData implementation).
package schema
