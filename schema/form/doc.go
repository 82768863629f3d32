// Package form provides validators that decode form data.
//
// Both validators accept url.Values, *multipart.Form or any schema.FormData
// value. Map also passes map[string]any inputs through; anything else is
// rejected. They pair with other validators in a safeaction chain: the form
// validator decodes the submission and the remaining validators check the
// decoded object.
//
//	b := safeaction.New().
//	    Schema(form.Map()).
//	    Schema(signupSchema)
//
// Map decodes into map[string]any. Struct binds into a struct using `form`
// and `file` tags:
//
//	type Upload struct {
//	    Title   string                  `form:"title"`
//	    Tags    []string                `form:"tags"`
//	    Avatar  *multipart.FileHeader   `file:"avatar"`
//	    Gallery []*multipart.FileHeader `file:"gallery"`
//	    Secret  string                  `form:"-"`
//	}
//
//	b := safeaction.New().Schema(form.Struct[Upload]())
//
// Uploaded file names are sanitized to their base name.
package form
