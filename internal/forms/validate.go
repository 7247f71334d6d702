// Package forms turns submitted planner forms into domain records. It owns
// the only field validation in the system: required fields must be non-empty
// and setup requirements must come from the catalog. Stores never validate.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vbonduro/truckfest/internal/domain"
)

const missingFieldsMessage = "Please fill in all required fields."

// FieldError names one rejected field by its JSON path.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned when a form cannot become a record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	for _, f := range e.Fields {
		if f.Rule != "required" {
			names := make([]string, len(e.Fields))
			for i, f := range e.Fields {
				names[i] = f.Field
			}
			return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
		}
	}
	return missingFieldsMessage
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("setupoption", func(fl validator.FieldLevel) bool {
		return domain.IsSetupOption(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register setupoption validation: %v", err))
	}
	return v
}

// check runs struct validation and converts failures into a ValidationError.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		// Drop the leading struct type name.
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields = append(fields, FieldError{Field: ns, Rule: fe.Tag()})
	}
	return &ValidationError{Fields: fields}
}

// resolveID keeps an existing identity or mints one for a new record.
func resolveID(id string) (uuid.UUID, error) {
	if id == "" {
		return domain.NewID(), nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &ValidationError{Fields: []FieldError{{Field: "id", Rule: "uuid"}}}
	}
	return parsed, nil
}

// optional maps an empty string to an absent value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// cleanList trims entries and drops empty ones; nil stays nil.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList splits a comma separated entry such as "Tacos, Burritos".
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}
