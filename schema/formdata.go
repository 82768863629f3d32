package schema

import (
	"mime/multipart"
	"net/url"
)

// FormData is implemented by form-like containers other than url.Values and
// *multipart.Form.
type FormData interface {
	FormValues() url.Values
}

// IsFormData reports whether v is a form-like input.
func IsFormData(v any) bool {
	switch f := v.(type) {
	case url.Values:
		return f != nil
	case *multipart.Form:
		return f != nil
	case FormData:
		return f != nil
	default:
		return false
	}
}
