package dto

import (
	"strings"

	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

// CustomerForm entrada del formulario de alta. Status vacío equivale a Pending.
type CustomerForm struct {
	Name       string `form:"name" validate:"required"`
	Branch     string `form:"branch" validate:"required"`
	Period     string `form:"period" validate:"required"`
	ClientName string `form:"clientName" validate:"required"`
	Status     string `form:"status" validate:"omitempty,customer_status"`
}

// FormFromDraft vuelve a poblar el formulario a partir del borrador (re-render tras fallo).
func FormFromDraft(d entity.CustomerDraft) CustomerForm {
	return CustomerForm{
		Name:       d.Name,
		Branch:     d.Branch,
		Period:     d.Period,
		ClientName: d.ClientName,
		Status:     string(d.Status),
	}
}

// Normalize recorta espacios para que "  " no cuente como valor.
func (f *CustomerForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Branch = strings.TrimSpace(f.Branch)
	f.Period = strings.TrimSpace(f.Period)
	f.ClientName = strings.TrimSpace(f.ClientName)
	f.Status = strings.TrimSpace(f.Status)
}

// ToDraft convierte el formulario (ya validado) en borrador con estado canónico.
func (f CustomerForm) ToDraft() entity.CustomerDraft {
	d := entity.NewCustomerDraft()
	d.Name, d.Branch, d.Period, d.ClientName = f.Name, f.Branch, f.Period, f.ClientName
	if st, ok := entity.ParseCustomerStatus(f.Status); ok {
		d.Status = st
	}
	return d
}
