// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lt=N                number < N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email      string  `json:"email"      validate:"required,email"`
//	    TotalPrice float64 `json:"totalPrice" validate:"required,gt=0"`
//	    Status     string  `json:"status"     validate:"nullable,in=pending,paid,Shipped"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		// `in=a,b,c` swallows the rest of the tag, so it must come last.
		rules = mergeInRule(rules)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s must be an integer.", field)
		}
	case "min":
		if !compare(v, raw, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	case "max":
		if !compare(v, raw, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
	case "gt":
		if !compareNum(raw, param, func(a, b float64) bool { return a > b }) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if !compareNum(raw, param, func(a, b float64) bool { return a >= b }) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	case "lt":
		if !compareNum(raw, param, func(a, b float64) bool { return a < b }) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if !compareNum(raw, param, func(a, b float64) bool { return a <= b }) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
	case "in":
		for _, item := range strings.Split(param, ",") {
			if raw == item {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// compare applies op to string length for strings, numeric value otherwise.
func compare(v reflect.Value, raw, param string, op func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	if v.Kind() == reflect.String {
		return op(float64(len([]rune(v.String()))), bound)
	}
	return compareNum(raw, param, op)
}

func compareNum(raw, param string, op func(a, b float64) bool) bool {
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	return op(val, bound)
}

// mergeInRule re-joins the comma-separated parameter list of an `in=` rule
// that strings.Split broke apart.
func mergeInRule(rules []string) []string {
	out := make([]string, 0, len(rules))
	for i := 0; i < len(rules); i++ {
		if strings.HasPrefix(rules[i], "in=") {
			out = append(out, strings.Join(rules[i:], ","))
			break
		}
		out = append(out, rules[i])
	}
	return out
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
