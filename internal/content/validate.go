package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every rejected field with the reason it was rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Validate applies defaults to rec and checks its constraints.
func Validate(rec Record) error {
	return check(&ValidationError{}, rec)
}

// Decode fills rec from a JSON object and validates it.
func Decode(data []byte, rec Record) error {
	verr := &ValidationError{}

	if err := json.Unmarshal(data, rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			verr.add("body", "must be a valid JSON object")
			return verr
		}
		if typeErr.Field == "" {
			verr.add("body", "must be a JSON object")
			return verr
		}
		// Unmarshal keeps going after a type mismatch, so the other fields are still checked.
		verr.add(typeErr.Field, "must be of type "+jsonType(typeErr.Type))
	}

	return check(verr, rec)
}

// check applies defaults and adds every constraint violation of rec to verr.
func check(verr *ValidationError, rec Record) error {
	rec.SetDefaults()

	collectFieldErrors(verr, validate.Struct(rec))
	if fc, ok := rec.(fieldChecker); ok {
		fc.checkFields(verr)
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	return nil
}

// Parse decodes and validates a JSON object as a record of kind k.
func Parse(k Kind, data []byte) (Record, error) {
	rec, err := NewRecord(k)
	if err != nil {
		return nil, err
	}

	if err := Decode(data, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// FromMap validates an untyped field map as a record of kind k.
func FromMap(k Kind, fields map[string]any) (Record, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode %s fields: %w", k, err)
	}

	return Parse(k, data)
}

func collectFieldErrors(verr *ValidationError, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return
	}

	for _, fe := range fieldErrs {
		verr.add(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}
