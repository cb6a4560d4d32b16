// Package validate provides Laravel-style struct-tag validation.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty (nil pointers are empty)
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               number: min value | string: min chars | slice: min items
//	max=N               number: max value | string: max chars | slice: max items
//	gt=N gte=N lt=N lte=N
//	between=min,max     number, string length or slice length within bounds
//	in=a,b,c            value must be one of the listed items
//	not_in=a,b,c        value must NOT be one of the listed items
//	confirmed           value must equal the sibling field <field>_confirmation
//	dive                validate each element of a slice of structs
//
// Pointer fields are dereferenced; types with an InexactFloat64 method
// (shopspring decimals) are treated as numbers.
//
// Nested errors are keyed by path:
//
//	type Line struct{ Qty int `json:"quantity" validate:"required,gte=1"` }
//	type Input struct{ Lines []Line `json:"items" validate:"required,min=1,dive"` }
//	// {"items.0.quantity": "The items.0.quantity field is required."}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of field path → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	validateStruct(reflect.ValueOf(v), "", errs)
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func validateStruct(rv reflect.Value, prefix string, errs map[string]string) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := prefix + jsonFieldName(field)
		value := rv.Field(i)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if rule == "dive" {
				dive(value, name, errs)
				continue
			}
			if msg := applyRule(rule, name, value, rv); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}
}

func dive(v reflect.Value, name string, errs map[string]string) {
	v = indirect(v)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return
	}
	for i := 0; i < v.Len(); i++ {
		validateStruct(v.Index(i), fmt.Sprintf("%s.%d.", name, i), errs)
	}
}

func applyRule(rule, field string, v reflect.Value, parent reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	if key == "required" {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}

	v = indirect(v)
	if !v.IsValid() {
		return "" // nil pointer: only presence rules apply
	}
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "numeric":
		if !isNumeric(v) {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return fmt.Sprintf("The %s field must be a number.", field)
			}
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}

	case "min":
		n := mustParseFloat(param)
		if measure(v) < n {
			return fmt.Sprintf("The %s must be at least %s%s.", field, param, unit(v))
		}
	case "max":
		n := mustParseFloat(param)
		if measure(v) > n {
			return fmt.Sprintf("The %s must not be greater than %s%s.", field, param, unit(v))
		}
	case "gt":
		if toFloat(v) <= mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if toFloat(v) < mustParseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lt":
		if toFloat(v) >= mustParseFloat(param) {
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		}
	case "lte":
		if toFloat(v) > mustParseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if ok {
			m := measure(v)
			if m < mustParseFloat(lo) || m > mustParseFloat(hi) {
				return fmt.Sprintf("The %s must be between %s and %s%s.", field, lo, hi, unit(v))
			}
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "not_in":
		for _, f := range strings.Split(param, ",") {
			if raw == strings.TrimSpace(f) {
				return fmt.Sprintf("The selected %s is invalid.", field)
			}
		}

	case "confirmed":
		other := siblingByJSONName(parent, confirmationPair(field))
		if other == nil || fmt.Sprintf("%v", indirectInterface(*other)) != raw {
			return fmt.Sprintf("The %s confirmation does not match.", baseName(field))
		}
	}

	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type floater interface{ InexactFloat64() float64 }

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func indirectInterface(v reflect.Value) interface{} {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	return v.Interface()
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false // false is a valid boolean value, not empty
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	_, ok := v.Interface().(floater)
	return ok
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	if f, ok := v.Interface().(floater); ok {
		return f.InexactFloat64()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

// measure is the value compared by min/max/between: the number itself, the
// element count of a collection, or the character count of anything else.
func measure(v reflect.Value) float64 {
	if isNumeric(v) {
		return toFloat(v)
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(v.Len())
	}
	return float64(len([]rune(fmt.Sprintf("%v", v.Interface()))))
}

func unit(v reflect.Value) string {
	if isNumeric(v) {
		return ""
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return " items"
	}
	return " characters"
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

// splitRules splits a tag on commas, re-joining the values of multi-value
// rules: "required,in=a,b,c,max=5" → ["required", "in=a,b,c", "max=5"].
func splitRules(tag string) []string {
	var rules []string
	for _, tok := range strings.Split(tag, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n := len(rules); n > 0 && !isRuleName(tok) && isMultiValue(rules[n-1]) {
			rules[n-1] += "," + tok
			continue
		}
		rules = append(rules, tok)
	}
	return rules
}

var ruleNames = map[string]bool{
	"required": true, "nullable": true, "email": true, "numeric": true,
	"integer": true, "min": true, "max": true, "gt": true, "gte": true,
	"lt": true, "lte": true, "between": true, "in": true, "not_in": true,
	"confirmed": true, "dive": true,
}

func isRuleName(tok string) bool {
	key, _, _ := strings.Cut(tok, "=")
	return ruleNames[key]
}

func isMultiValue(rule string) bool {
	key, _, ok := strings.Cut(rule, "=")
	return ok && (key == "in" || key == "not_in" || key == "between")
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if r == target {
			return true
		}
	}
	return false
}

// confirmationPair maps "password" ↔ "password_confirmation".
func confirmationPair(field string) string {
	if base, ok := strings.CutSuffix(field, "_confirmation"); ok {
		return base
	}
	return field + "_confirmation"
}

func baseName(field string) string {
	base, _ := strings.CutSuffix(field, "_confirmation")
	return base
}

func siblingByJSONName(parent reflect.Value, name string) *reflect.Value {
	// Nested paths ("items.0.x") compare against the last segment.
	if idx := strings.LastIndex(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if jsonFieldName(rt.Field(i)) == name {
			v := parent.Field(i)
			return &v
		}
	}
	return nil
}
