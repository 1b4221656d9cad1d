package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	pkgjwt "github.com/jhoicas/customer-portal/pkg/jwt"
)

// CustomerHandler vista de clientes: listado, alta y exportación.
type CustomerHandler struct {
	deps RouterDeps
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(deps RouterDeps) *CustomerHandler {
	return &CustomerHandler{deps: deps}
}

type customerView struct {
	s      *requestScope
	list   *customer.ListController
	create *customer.CreateController
}

// view arma los controladores de la vista para esta petición; el alta notifica al listado.
func (h *CustomerHandler) view(c *fiber.Ctx) customerView {
	s := h.deps.scopeFor(c)
	repo := restapi.NewCustomerRepository(s.api)
	list := customer.NewListController(repo, s.guard, s.log)
	return customerView{
		s:      s,
		list:   list,
		create: customer.NewCreateController(repo, s.store, s.guard, list.NotifyChildSaved, s.log),
	}
}

// List GET /customers  (?new=1 abre el panel de alta con un borrador nuevo)
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	v := h.view(c)
	if open, _ := strconv.ParseBool(c.Query("new")); open {
		v.create.Open()
	}
	_ = v.list.Load(c.UserContext())
	if done, err := v.s.redirected(c); done {
		return err
	}
	return h.render(c, fiber.StatusOK, v, dto.FormFromDraft(v.create.Snapshot().Draft), nil)
}

// Create POST /customers
// Éxito: re-render con el listado recargado y el panel cerrado.
// Fallo: re-render con el panel abierto y lo escrito intacto.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	in.Normalize()

	v := h.view(c)
	v.create.Open()
	v.create.SetDraft(in.ToDraft())

	if err := dto.Validate(in); err != nil {
		var verr *dto.ValidationError
		invalid := map[string]bool{}
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				invalid[f] = true
			}
		}
		_ = v.list.Load(c.UserContext())
		if done, rerr := v.s.redirected(c); done {
			return rerr
		}
		return h.renderWithError(c, fiber.StatusUnprocessableEntity, v, in, invalid, err.Error())
	}

	err := v.create.Submit(c.UserContext())
	if done, rerr := v.s.redirected(c); done {
		return rerr
	}
	if err != nil {
		_ = v.list.Load(c.UserContext())
		if done, rerr := v.s.redirected(c); done {
			return rerr
		}
		return h.render(c, failureStatus(err), v, in, nil)
	}
	return h.render(c, fiber.StatusCreated, v, dto.FormFromDraft(v.create.Snapshot().Draft), nil)
}

// Export GET /customers/export.pdf
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	v := h.view(c)
	b, filename, err := customer.NewExportUseCase(v.list, h.deps.PDF).Download(c.UserContext(), h.username(v.s))
	if done, rerr := v.s.redirected(c); done {
		return rerr
	}
	if err != nil {
		if errors.As(err, new(*domain.APIError)) {
			return fiber.NewError(failureStatus(err), domain.UserMessage(err))
		}
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

func (h *CustomerHandler) username(s *requestScope) string {
	tok, ok := s.store.Get()
	if !ok {
		return ""
	}
	info, err := pkgjwt.Inspect(tok)
	if err != nil {
		return ""
	}
	return info.Username
}

func (h *CustomerHandler) render(c *fiber.Ctx, status int, v customerView, form dto.CustomerForm, invalid map[string]bool) error {
	return render(c, status, "customers", customersPage{
		page:    page{Title: "Customers", AppName: h.deps.AppName, Authenticated: true},
		List:    v.list.Snapshot(),
		Create:  v.create.Snapshot(),
		Form:    form,
		Invalid: invalid,
	})
}

// renderWithError muestra un error de formulario que no pasó por el controlador.
func (h *CustomerHandler) renderWithError(c *fiber.Ctx, status int, v customerView, form dto.CustomerForm, invalid map[string]bool, msg string) error {
	create := v.create.Snapshot()
	create.Error = msg
	return render(c, status, "customers", customersPage{
		page:    page{Title: "Customers", AppName: h.deps.AppName, Authenticated: true},
		List:    v.list.Snapshot(),
		Create:  create,
		Form:    form,
		Invalid: invalid,
	})
}

// failureStatus status de respuesta del portal para un fallo de la API.
func failureStatus(err error) int {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrTransportFailure):
		return fiber.StatusBadGateway
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadGateway
	}
}
