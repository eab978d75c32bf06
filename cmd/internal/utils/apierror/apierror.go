package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes. It renders as
// {"message": "..."} and carries the HTTP status to answer with.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	status  int
	Message string `json:"message"`
}

func (s *simpleError) Error() string {
	return s.Message
}

func (s *simpleError) Code() int {
	return s.status
}

func NewSimple(status int, message string) ErrorResponse {
	return &simpleError{status: status, Message: message}
}

var (
	InternalServerError      = NewSimple(http.StatusInternalServerError, "Error interno del servidor")
	MalformedBodyError       = NewSimple(http.StatusBadRequest, "Cuerpo de la petición inválido")
	MissingDataError         = NewSimple(http.StatusBadRequest, "Faltan datos")
	NameRequiredError        = NewSimple(http.StatusBadRequest, "Nombre requerido")
	DoctorNameTakenError     = NewSimple(http.StatusConflict, "El nombre ya está registrado")
	PatientNotFoundError     = NewSimple(http.StatusNotFound, "Paciente no encontrado")
	DoctorNotFoundError      = NewSimple(http.StatusNotFound, "Médico no encontrado")
	AppointmentNotFoundError = NewSimple(http.StatusNotFound, "Reserva no encontrada")
	NotFoundError            = NewSimple(http.StatusNotFound, "Recurso no encontrado")
	TooManyRequestsError     = NewSimple(http.StatusTooManyRequests, "Demasiadas peticiones")
)

func NewMissingParamError(param string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Falta el parámetro '%s'", param))
}

func NewInvalidParamTypeError(param, typ string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("El parámetro '%s' debe ser de tipo %s", param, typ))
}

// FromValidationError turns a validator failure into a 400 naming the first
// offending field. Any other error becomes a malformed body error.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MalformedBodyError
	}

	fe := verrs[0]
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return NewSimple(http.StatusBadRequest, fmt.Sprintf("Faltan datos: '%s' es requerido", field))
	case "max":
		return NewSimple(http.StatusBadRequest, fmt.Sprintf("'%s' excede el largo máximo de %s", field, fe.Param()))
	default:
		return NewSimple(http.StatusBadRequest, fmt.Sprintf("'%s' no es válido", field))
	}
}

// fieldName prefers the JSON name registered on the validator, falling back
// to the struct field name.
func fieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return strings.ToLower(fe.StructField())
}
