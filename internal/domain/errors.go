package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los textos se muestran tal cual al usuario.
var (
	ErrTransportFailure = errors.New("server unreachable")
	ErrAuthRejected     = errors.New("session rejected by server")
	ErrRequestFailed    = errors.New("request failed")
	ErrValidationFailed = errors.New("all fields are required")
	ErrAuthRequired     = errors.New("authentication required, please log in again")
	ErrMissingToken     = errors.New("login succeeded but no token returned")
	ErrBusy             = errors.New("operation already in progress")
)

// ErrorKind clasifica los fallos de la API en la taxonomía que consumen los controladores.
type ErrorKind int

const (
	KindRequestFailed ErrorKind = iota
	KindTransportFailure
	KindAuthRejected
)

// String nombre estable del kind (logs).
func (k ErrorKind) String() string {
	switch k {
	case KindTransportFailure:
		return "transport_failure"
	case KindAuthRejected:
		return "auth_rejected"
	default:
		return "request_failed"
	}
}

// APIError fallo normalizado de una llamada a la API REST.
// Status es 0 cuando no hubo respuesta (TransportFailure).
// Detail es el mensaje que envió el backend en el cuerpo, vacío si no lo hubo;
// Message siempre tiene un texto presentable.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrAuthRejected) y similares.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindTransportFailure:
		return ErrTransportFailure
	case KindAuthRejected:
		return ErrAuthRejected
	default:
		return ErrRequestFailed
	}
}

// IsAuthRejected indica si err (o alguno envuelto) es un rechazo 401.
func IsAuthRejected(err error) bool {
	return errors.Is(err, ErrAuthRejected)
}

// UserMessage texto para mostrar en línea en la vista que originó el fallo.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
