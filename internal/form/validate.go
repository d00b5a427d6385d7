// Package form holds the submitted venue, artist, show and search forms
// together with their validation rules.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/fyyur/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// phonePattern accepts ten North-American digits with optional
// parentheses around the area code and '-', '.' or ' ' separators.
var phonePattern = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)

// Validator returns the shared validator with the phone, genre and state
// rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		must(validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		}))
		must(validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return model.IsGenre(fl.Field().String())
		}))
		must(validate.RegisterValidation("state", func(fl validator.FieldLevel) bool {
			return model.IsState(fl.Field().String())
		}))
		must(validate.RegisterValidation("starttime", func(fl validator.FieldLevel) bool {
			_, err := ParseStartTime(fl.Field().String())
			return err == nil
		}))
	})
	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidationError lists every field that failed, keyed by the form name
// of the field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Check validates s and returns a *ValidationError describing every
// failed field, or nil.
func Check(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		// genres[2] reports against genres
		name, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := out.Fields[name]; seen {
			continue
		}
		out.Fields[name] = message(fe)
	}
	return out
}

var messages = map[string]string{
	"required":    "this field is required",
	"required_if": "this field is required",
	"phone":       "invalid phone number",
	"genre":       "unknown genre",
	"state":       "unknown state",
	"url":         "must be a valid URL",
	"starttime":   "must be a date and time like 2006-01-02 15:04",
	"gt":          "must be a valid id",
}

// message turns a field error into the text shown next to the input.
func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("select at least %s", fe.Param())
	}
	return "invalid value"
}
