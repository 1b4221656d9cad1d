package repository

import (
	"context"

	"github.com/jhoicas/customer-portal/internal/domain/entity"
)

// CustomerRepository define el puerto hacia la colección remota de clientes (DIP).
// La implementación habla con la API REST; los errores son *domain.APIError.
type CustomerRepository interface {
	// List devuelve los clientes en el orden de la respuesta del servidor.
	List(ctx context.Context) ([]entity.Customer, error)
	Create(ctx context.Context, draft entity.CustomerDraft) (*entity.Customer, error)
}
