package customer

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/guard"
	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

// SavedFunc callback de finalización del alta; el listado pasa NotifyChildSaved.
type SavedFunc func(ctx context.Context) error

// CreateState estado del panel de alta.
type CreateState struct {
	Open       bool
	Draft      entity.CustomerDraft
	Submitting bool
	Error      string
}

// CreateController gestiona el borrador y el envío del alta de un cliente.
// No revalida campos: la capa de presentación exige los requeridos y el
// backend es la autoridad final.
type CreateController struct {
	repo    repository.CustomerRepository
	session repository.SessionStore
	guard   *guard.RouteGuard
	onSaved SavedFunc
	log     zerolog.Logger

	mu    sync.Mutex
	state CreateState
}

// NewCreateController construye el controlador con el panel cerrado.
func NewCreateController(
	repo repository.CustomerRepository,
	session repository.SessionStore,
	g *guard.RouteGuard,
	onSaved SavedFunc,
	log zerolog.Logger,
) *CreateController {
	return &CreateController{
		repo:    repo,
		session: session,
		guard:   g,
		onSaved: onSaved,
		log:     log,
		state:   CreateState{Draft: entity.NewCustomerDraft()},
	}
}

// Open abre el panel. En cada transición cerrado→abierto el borrador vuelve a los valores por defecto.
func (c *CreateController) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Open {
		return
	}
	c.state.Open = true
	c.state.Draft = entity.NewCustomerDraft()
	c.state.Error = ""
}

// Close cierra el panel; el borrador se descarta en el próximo Open.
func (c *CreateController) Close() {
	c.mu.Lock()
	c.state.Open = false
	c.mu.Unlock()
}

// SetDraft reemplaza el borrador con lo que escribió el usuario. Ignorado durante un envío.
func (c *CreateController) SetDraft(d entity.CustomerDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Submitting {
		return
	}
	c.state.Draft = d
}

// Snapshot copia del estado para renderizar.
func (c *CreateController) Snapshot() CreateState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit envía el borrador. Un segundo Submit con otro en vuelo devuelve ErrBusy sin efecto.
// Éxito: notifica al listado y cierra el panel. Fallo: panel abierto y borrador intacto.
func (c *CreateController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	if !c.session.IsAuthenticated() {
		c.state.Error = domain.ErrAuthRequired.Error()
		c.mu.Unlock()
		return domain.ErrAuthRequired
	}
	c.state.Submitting = true
	c.state.Error = ""
	draft := c.state.Draft
	c.mu.Unlock()

	created, err := c.repo.Create(ctx, draft)
	if err != nil {
		c.mu.Lock()
		c.state.Submitting = false
		if !domain.IsAuthRejected(err) {
			c.state.Error = domain.UserMessage(err)
		}
		c.mu.Unlock()

		if domain.IsAuthRejected(err) {
			c.guard.Expire(ports.RouteCustomers)
			return err
		}
		c.log.Warn().Err(err).Msg("no se pudo crear el cliente")
		return err
	}

	ev := c.log.Info()
	if created != nil {
		ev = ev.Str("customer_id", created.ID)
	}
	ev.Msg("cliente creado")
	if c.onSaved != nil {
		if err := c.onSaved(ctx); err != nil {
			c.log.Debug().Err(err).Msg("recarga tras alta con error; queda en el estado del listado")
		}
	}

	c.mu.Lock()
	c.state.Submitting = false
	c.state.Open = false
	c.mu.Unlock()
	return nil
}
