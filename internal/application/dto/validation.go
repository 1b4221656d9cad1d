package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

var validate = validator.New()

func init() {
	// acepta los estados canónicos y las etiquetas heredadas
	validate.RegisterValidation("customer_status", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseCustomerStatus(fl.Field().String())
		return ok
	})
}

// ValidationError campos que no pasaron la validación. Se compara con domain.ErrValidationFailed.
type ValidationError struct {
	Fields []string
}

// StatusMessage mensaje cuando solo falla el estado.
const StatusMessage = "status must be Pending, Active or Inactive"

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 && e.Fields[0] == "status" {
		return StatusMessage
	}
	return domain.ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error { return domain.ErrValidationFailed }

// Has indica si el campo (nombre del tag form) falló.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Validate aplica los tags validate de v. Los espacios no cuentan como valor.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, lowerFirst(fe.Field()))
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
