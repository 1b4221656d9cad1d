package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

const customersPath = "/customers"

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository implementa repository.CustomerRepository sobre la API REST.
type CustomerRepository struct {
	api *Client
}

// NewCustomerRepository construye el repositorio. api debe estar ligado a una sesión.
func NewCustomerRepository(api *Client) *CustomerRepository {
	return &CustomerRepository{api: api}
}

// List GET /customers (autenticado). Conserva el orden del servidor.
func (r *CustomerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	raw, err := r.api.Request(ctx, http.MethodGet, customersPath, nil, true)
	if err != nil {
		return nil, err
	}
	list := []entity.Customer{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, unexpectedBody(err)
	}
	return list, nil
}

// Create POST /customers (autenticado) con el borrador; devuelve el cliente creado.
func (r *CustomerRepository) Create(ctx context.Context, draft entity.CustomerDraft) (*entity.Customer, error) {
	raw, err := r.api.Request(ctx, http.MethodPost, customersPath, draft, true)
	if err != nil {
		return nil, err
	}
	var created entity.Customer
	if len(bytes.TrimSpace(raw)) == 0 {
		return &created, nil
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, unexpectedBody(err)
	}
	return &created, nil
}

func unexpectedBody(err error) error {
	return fmt.Errorf("restapi: decodificar respuesta (%v): %w", err, &domain.APIError{
		Kind:    domain.KindRequestFailed,
		Message: "unexpected response from server",
	})
}
