// Package contract holds the inbound request shapes shared by the HTTP API and
// the queue consumer, and their conversion into commands.
package contract

import (
	"errors"
	"reflect"
	"strings"

	"orderservice/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// Validator checks `validate` struct tags and reports failures as a
// VALIDATION_ERROR whose details use the JSON field paths.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError(err)
	}

	details := make([]errs.Detail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errs.Detail{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return errs.NewValidationError(err, details...)
}

// fieldPath drops the root type name from the namespace: cart.cartItems[0].name.
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a UUID"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "len":
		return "must be " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
