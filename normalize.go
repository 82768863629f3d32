package safeaction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/safeaction/schema"
)

// libraryErrorName is the error type name reported by the reference schema
// library. Types with this exact name are always treated as validation errors.
const libraryErrorName = "ZodError"

// issuePather and issueMessager let issue types describe themselves without
// relying on field names.
type issuePather interface {
	IssuePath() []any
}

type issueMessager interface {
	IssueMessage() string
}

// IsValidationError reports whether err, or any error it wraps, looks like a
// validation failure: its type name is the library error name or contains
// "ValidationError", or it exposes Errors or Issues. Unsupported schema errors
// are never validation errors.
func IsValidationError(err error) bool {
	if err == nil || errors.Is(err, schema.ErrUnsupportedSchema) {
		return false
	}

	found := false
	walkErrors(err, func(e error) bool {
		if looksLikeValidation(e) {
			found = true
			return false
		}
		return true
	})
	return found
}

// NormalizeIssues extracts the issue list from the first error in the chain
// that carries one. Errors is read before Issues. An error whose own type is a
// slice is treated as the issue list itself.
func NormalizeIssues(err error) []Issue {
	var list reflect.Value
	walkErrors(err, func(e error) bool {
		if v, ok := issueList(e); ok {
			list = v
			return false
		}
		return true
	})
	if !list.IsValid() {
		return nil
	}

	issues := make([]Issue, 0, list.Len())
	for i := range list.Len() {
		issues = append(issues, normalizeIssue(list.Index(i).Interface()))
	}
	return issues
}

// ValidationMessage summarizes the first issue. Without issues it falls back
// to the error text.
func ValidationMessage(issues []Issue, err error) string {
	if len(issues) == 0 {
		return fmt.Sprintf("Validation error: %v", err)
	}

	first := issues[0]
	field := first.PathString()
	if field == "" {
		field = "unknown"
	}
	return fmt.Sprintf("Input (%s) is error: %s", field, first.Message)
}

// walkErrors visits err and everything it wraps depth-first until visit
// returns false.
func walkErrors(err error, visit func(error) bool) bool {
	if err == nil {
		return true
	}
	if !visit(err) {
		return false
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return walkErrors(x.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if !walkErrors(e, visit) {
				return false
			}
		}
	}
	return true
}

func looksLikeValidation(err error) bool {
	name := typeName(err)
	if name == libraryErrorName || strings.Contains(name, "ValidationError") {
		return true
	}
	return hasIssueMember(err)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// issueMembers are the members read for issue lists, in order.
var issueMembers = [...]string{"Errors", "Issues"}

// issueMember returns the named method result or exported field of v.
func issueMember(v any, name string) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return reflect.Value{}, false
	}

	if m := rv.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return m.Call(nil)[0], true
	}
	sv := reflect.Indirect(rv)
	if sv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	if f, ok := sv.Type().FieldByName(name); ok && f.IsExported() {
		if fv, err := sv.FieldByIndexErr(f.Index); err == nil && fv.CanInterface() {
			return fv, true
		}
	}
	return reflect.Value{}, false
}

func hasIssueMember(v any) bool {
	for _, name := range issueMembers {
		if _, ok := issueMember(v, name); ok {
			return true
		}
	}
	return false
}

// issueList returns the first of Errors and Issues that holds a list. An error
// whose own type is a slice is the list.
func issueList(err error) (reflect.Value, bool) {
	rv := reflect.ValueOf(err)
	if rv.Kind() == reflect.Slice {
		return rv, true
	}

	for _, name := range issueMembers {
		src, ok := issueMember(err, name)
		if !ok {
			continue
		}
		src = reflect.Indirect(src)
		for src.Kind() == reflect.Interface && !src.IsNil() {
			src = src.Elem()
		}
		if src.Kind() == reflect.Slice || src.Kind() == reflect.Array {
			return src, true
		}
	}
	return reflect.Value{}, false
}

func normalizeIssue(raw any) Issue {
	issue := Issue{Path: []any{}, Raw: raw}

	if p, ok := raw.(issuePather); ok {
		issue.Path = normalizePath(reflect.ValueOf(p.IssuePath()))
	} else if f, ok := exportedField(raw, "Path"); ok {
		issue.Path = normalizePath(f)
	}

	switch m := raw.(type) {
	case issueMessager:
		issue.Message = m.IssueMessage()
	case error:
		if f, ok := exportedField(raw, "Message"); ok && f.Kind() == reflect.String {
			issue.Message = f.String()
		} else {
			issue.Message = m.Error()
		}
	default:
		if f, ok := exportedField(raw, "Message"); ok && f.Kind() == reflect.String {
			issue.Message = f.String()
		} else {
			issue.Message = fmt.Sprint(raw)
		}
	}
	return issue
}

// normalizePath keeps string and integer segments, unwraps {Key} segments and
// stringifies anything else. A non-slice path is empty.
func normalizePath(v reflect.Value) []any {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return []any{}
	}

	path := make([]any, 0, v.Len())
	for i := range v.Len() {
		path = append(path, normalizeSegment(v.Index(i).Interface()))
	}
	return path
}

func normalizeSegment(seg any) any {
	switch s := seg.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return s
	case schema.PathKey:
		return normalizeSegment(s.Key)
	case *schema.PathKey:
		if s != nil {
			return normalizeSegment(s.Key)
		}
	}
	if k, ok := exportedField(seg, "Key"); ok {
		return normalizeSegment(k.Interface())
	}
	return fmt.Sprint(seg)
}

func exportedField(v any, name string) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f, ok := rv.Type().FieldByName(name)
	if !ok || !f.IsExported() {
		return reflect.Value{}, false
	}
	fv, err := rv.FieldByIndexErr(f.Index)
	if err != nil || !fv.CanInterface() {
		return reflect.Value{}, false
	}
	return fv, true
}
