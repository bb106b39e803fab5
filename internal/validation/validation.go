// Package validation valida payloads con go-playground/validator y
// traduce los errores a errs.FieldError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"kittygram/internal/errs"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar el nombre JSON del campo, no el de Go.
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
	return v
}

// FieldErrors es un error de validación con detalle por campo.
type FieldErrors []errs.FieldError

func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(f))
	for _, e := range f {
		parts = append(parts, e.Field+": "+e.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field arma un FieldErrors de un solo campo.
func Field(field, message string) FieldErrors {
	return FieldErrors{{Field: field, Error: message}}
}

// Struct corre las reglas `validate:"..."` de v.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, errs.FieldError{
			Field: fieldPath(fe),
			Error: message(fe),
		})
	}
	return out
}

// ToHTTPError convierte FieldErrors en un 400. Devuelve nil si err no es de validación.
func ToHTTPError(err error) *errs.HTTPError {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return errs.NewBadRequestError("Validation failed", fe)
	}
	return nil
}

// fieldPath quita el nombre del struct raíz: "catRequest.achievements[0].achievement_name" -> "achievements[0].achievement_name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "dive":
		return "some items are invalid"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}
