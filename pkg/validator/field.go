package validator

import (
	"strconv"
	"strings"
)

// FieldRule builds a Rule for the value found under a field.
// Rules other than Required are skipped for missing or nil values.
type FieldRule struct {
	build    func(field string, value any) Rule
	required bool
}

// Rule returns the rule checking value under field.
func (r FieldRule) Rule(field string, value any) Rule {
	return r.build(field, value)
}

// Custom wraps build into a FieldRule.
func Custom(build func(field string, value any) Rule) FieldRule {
	return FieldRule{build: build}
}

// Required fails when the field is missing, nil or a blank string.
func Required() FieldRule {
	return FieldRule{
		required: true,
		build: func(field string, value any) Rule {
			s, ok := value.(string)
			if !ok && value != nil {
				s = "present"
			}
			return RequiredString(field, s)
		},
	}
}

func MinLen(n int) FieldRule {
	return stringRule(func(field, s string) Rule { return MinLenString(field, s, n) })
}

func MaxLen(n int) FieldRule {
	return stringRule(func(field, s string) Rule { return MaxLenString(field, s, n) })
}

func Email() FieldRule {
	return stringRule(ValidEmail)
}

// OneOf accepts string values listed in options.
func OneOf(options ...string) FieldRule {
	return stringRule(func(field, s string) Rule { return InList(field, s, options) })
}

// Min accepts numbers, and numeric strings, of at least min.
func Min(min float64) FieldRule {
	return numberRule(func(field string, f float64) Rule { return MinNum(field, f, min) })
}

// Max accepts numbers, and numeric strings, of at most max.
func Max(max float64) FieldRule {
	return numberRule(func(field string, f float64) Rule { return MaxNum(field, f, max) })
}

func stringRule(build func(field, s string) Rule) FieldRule {
	return Custom(func(field string, value any) Rule {
		s, ok := value.(string)
		if !ok {
			return TypeMismatch(field, "string", value)
		}
		return build(field, s)
	})
}

func numberRule(build func(field string, f float64) Rule) FieldRule {
	return Custom(func(field string, value any) Rule {
		f, ok := toFloat(value)
		if !ok {
			return TypeMismatch(field, "number", value)
		}
		return build(field, f)
	})
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
