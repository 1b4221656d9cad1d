package entity

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
)

// CustomerStatus estado de un cliente.
type CustomerStatus string

const (
	StatusPending  CustomerStatus = "Pending"
	StatusActive   CustomerStatus = "Active"
	StatusInactive CustomerStatus = "Inactive"
)

// CustomerStatuses orden en que se ofrecen en el formulario.
var CustomerStatuses = []CustomerStatus{StatusPending, StatusActive, StatusInactive}

var statusFold = cases.Fold()

// etiquetas aceptadas (ya plegadas) -> estado canónico
var statusAliases = map[string]CustomerStatus{
	"pending":  StatusPending,
	"menunggu": StatusPending,
	"active":   StatusActive,
	"aktif":    StatusActive,
	"inactive": StatusInactive,
	"nonaktif": StatusInactive,
}

// ParseCustomerStatus reconoce el estado sin distinguir mayúsculas, incluidas
// las etiquetas heredadas de la UI anterior. ok=false si no es un estado conocido.
func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	st, ok := statusAliases[statusFold.String(strings.TrimSpace(s))]
	return st, ok
}

// Customer registro de cliente tal como lo devuelve la API.
// Una vez persistido todos los campos están informados.
type Customer struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Branch     string         `json:"branch"`
	Period     string         `json:"period"`
	ClientName string         `json:"clientName"`
	Status     CustomerStatus `json:"status"`
	CreatedAt  string         `json:"createdAt"` // ISO-8601, asignado por el backend
}

// customerWire acepta los nombres actuales y los de la API anterior (nama, cabang, ...).
type customerWire struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Branch     string `json:"branch"`
	Period     string `json:"period"`
	ClientName string `json:"clientName"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`

	Nama          string `json:"nama"`
	Cabang        string `json:"cabang"`
	Periode       string `json:"periode"`
	NamaNasabah   string `json:"namaNasabah"`
	TanggalDibuat string `json:"tanggalDibuat"`
}

// UnmarshalJSON decodifica un cliente; si faltan los campos actuales usa los heredados.
// Los estados heredados (Aktif, ...) se traducen al canónico.
func (c *Customer) UnmarshalJSON(data []byte) error {
	var w customerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	status := CustomerStatus(w.Status)
	if st, ok := ParseCustomerStatus(w.Status); ok {
		status = st
	}
	*c = Customer{
		ID:         w.ID,
		Name:       firstNonEmpty(w.Name, w.Nama),
		Branch:     firstNonEmpty(w.Branch, w.Cabang),
		Period:     firstNonEmpty(w.Period, w.Periode),
		ClientName: firstNonEmpty(w.ClientName, w.NamaNasabah),
		Status:     status,
		CreatedAt:  firstNonEmpty(w.CreatedAt, w.TanggalDibuat),
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// CustomerDraft borrador de alta: solo los cinco campos editables, sin id ni createdAt.
type CustomerDraft struct {
	Name       string         `json:"name"`
	Branch     string         `json:"branch"`
	Period     string         `json:"period"`
	ClientName string         `json:"clientName"`
	Status     CustomerStatus `json:"status"`
}

// NewCustomerDraft borrador vacío con estado Pending.
func NewCustomerDraft() CustomerDraft {
	return CustomerDraft{Status: StatusPending}
}
