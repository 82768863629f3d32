package form

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

func structType(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidForm)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a struct, got %s", ErrInvalidForm, rv.Kind())
	}
	return rv, nil
}

// bind sets the fields of the struct v points to from values and files.
// Fields without a form or file tag are left untouched.
func bind(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv, err := structType(v)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		if name := tagName(fieldType, "form"); name != "" {
			if fieldValues := values[name]; len(fieldValues) > 0 {
				if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, fieldType.Name, err)
				}
			}
		}

		if name := tagName(fieldType, "file"); name != "" {
			if headers := files[name]; len(headers) > 0 {
				if err := setFileField(field, fieldType.Type, headers); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, fieldType.Name, err)
				}
			}
		}
	}

	return nil
}

// tagName returns the parameter name from a tag such as `form:"name,omitempty"`.
// Missing and "-" tags yield "".
func tagName(field reflect.StructField, key string) string {
	tag := field.Tag.Get(key)
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	if fieldType.Kind() == reflect.Slice {
		return setSliceValue(field, fieldType, values)
	}

	if len(values) == 0 {
		return nil
	}
	value := values[0]

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			// Checkboxes submit "on"
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue also splits comma-separated values.
func setSliceValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	var all []string
	for _, v := range values {
		all = append(all, strings.Split(v, ",")...)
	}

	slice := reflect.MakeSlice(fieldType, len(all), len(all))
	for i, value := range all {
		if err := setFieldValue(slice.Index(i), fieldType.Elem(), []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}

func setFileField(field reflect.Value, fieldType reflect.Type, headers []*multipart.FileHeader) error {
	headers = sanitizeHeaders(headers)
	if len(headers) == 0 {
		return nil
	}

	switch {
	case fieldType == fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
		return nil
	case fieldType.Kind() == reflect.Slice && fieldType.Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(headers))
		return nil
	}
	return fmt.Errorf("unsupported type for file field: %v (expected *multipart.FileHeader or []*multipart.FileHeader)", fieldType)
}

// sanitizeHeaders returns copies of headers with sanitized file names.
func sanitizeHeaders(headers []*multipart.FileHeader) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, 0, len(headers))
	for _, fh := range headers {
		if fh == nil {
			continue
		}
		c := *fh
		c.Filename = sanitizeFilename(fh.Filename)
		out = append(out, &c)
	}
	return out
}

// sanitizeFilename strips directory components and null bytes.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
