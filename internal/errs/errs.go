// Package errs define la forma JSON de los errores de la API.
package errs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// FieldError es un error de validación de un campo.
//
//	{ "field": "color", "error": "invalid color code or no name found for this color" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError es el cuerpo de toda respuesta de error.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is: cualquier *HTTPError matchea, sin comparar Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// MakeUpperCaseWithUnderscores: "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message)
}

func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

func NewConflictError(message string) *HTTPError {
	return newHTTPError(http.StatusConflict, message)
}

// NewBadRequestError crea un 400 con errores por campo opcionales.
func NewBadRequestError(message string, fields []FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message)
	e.Errors = fields
	return e
}

// NewInternalServerError no expone el error real al cliente.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Write serializa err. Lo que no sea *HTTPError sale como 500.
func Write(w http.ResponseWriter, err error) {
	var he *HTTPError
	if !errors.As(err, &he) {
		he = NewInternalServerError()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status)
	_ = json.NewEncoder(w).Encode(he)
}
