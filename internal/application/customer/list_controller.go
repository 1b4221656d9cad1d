// Package customer contiene los controladores de la vista de clientes:
// el listado (ListController) y el alta (CreateController).
package customer

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/customer-portal/internal/application/guard"
	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

// ErrInactive la respuesta llegó con la vista ya abandonada y se descartó.
var ErrInactive = errors.New("customer: vista inactiva, respuesta descartada")

// ListState estado observable del listado.
type ListState struct {
	Records []entity.Customer // orden del servidor
	Loading bool
	Error   string
}

// ListController orquesta la carga de la colección de clientes.
// Records solo cambia por una carga exitosa completa; nunca por un fallo ni
// por inserciones optimistas.
type ListController struct {
	repo  repository.CustomerRepository
	guard *guard.RouteGuard
	log   zerolog.Logger

	flight singleflight.Group
	fetch  sync.Mutex // una sola petición List en vuelo, también entre cargas forzadas

	mu     sync.Mutex
	state  ListState
	active bool
}

// NewListController construye el controlador ya activo.
func NewListController(repo repository.CustomerRepository, g *guard.RouteGuard, log zerolog.Logger) *ListController {
	return &ListController{repo: repo, guard: g, log: log, active: true}
}

// Activate marca la vista como visible.
func (c *ListController) Activate() {
	c.mu.Lock()
	c.active = true
	c.mu.Unlock()
}

// Deactivate marca la vista como abandonada: las respuestas pendientes se descartan.
func (c *ListController) Deactivate() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

// Snapshot copia del estado para renderizar.
func (c *ListController) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Records = append([]entity.Customer(nil), c.state.Records...)
	return st
}

// Load trae la colección. Sin sesión redirige a login y no emite peticiones.
// Llamadas solapadas comparten la misma petición en vuelo.
func (c *ListController) Load(ctx context.Context) error {
	if !c.guard.EnsureAuthenticated(ports.RouteCustomers) {
		return domain.ErrAuthRequired
	}
	_, err, shared := c.flight.Do("load", func() (any, error) {
		return nil, c.load(ctx)
	})
	if shared {
		c.log.Debug().Msg("carga de clientes compartida con una en vuelo")
	}
	return err
}

// NotifyChildSaved contrato de recarga que usa el alta tras guardar.
// Nunca se une a una carga ya en vuelo (empezó antes del alta): espera a que
// termine y emite una petición nueva. Cargas solapadas posteriores se unen a esta.
func (c *ListController) NotifyChildSaved(ctx context.Context) error {
	if !c.guard.EnsureAuthenticated(ports.RouteCustomers) {
		return domain.ErrAuthRequired
	}
	c.flight.Forget("load")
	_, err, _ := c.flight.Do("load", func() (any, error) {
		return nil, c.load(ctx)
	})
	return err
}

func (c *ListController) load(ctx context.Context) error {
	c.fetch.Lock()
	defer c.fetch.Unlock()

	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	list, err := c.repo.List(ctx)

	c.mu.Lock()
	c.state.Loading = false
	if !c.active {
		c.mu.Unlock()
		if domain.IsAuthRejected(err) {
			// el estado de la vista se descarta, la sesión no
			c.guard.Revoke()
			return err
		}
		c.log.Debug().Msg("respuesta de clientes descartada: vista inactiva")
		return ErrInactive
	}
	switch {
	case err == nil:
		c.state.Records = list
		c.state.Error = ""
		c.mu.Unlock()
		return nil
	case domain.IsAuthRejected(err):
		c.mu.Unlock()
		c.guard.Expire(ports.RouteCustomers)
		return err
	case errors.Is(err, domain.ErrAuthRequired):
		// el token desapareció entre el guard y la petición
		c.mu.Unlock()
		c.guard.EnsureAuthenticated(ports.RouteCustomers)
		return err
	default:
		c.state.Error = domain.UserMessage(err)
		c.mu.Unlock()
		c.log.Warn().Err(err).Msg("no se pudo cargar clientes")
		return err
	}
}
