package http

import (
	"github.com/gofiber/fiber/v2"

	pkgjwt "github.com/jhoicas/customer-portal/pkg/jwt"
)

// DashboardHandler landing protegida.
type DashboardHandler struct {
	deps RouterDeps
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(deps RouterDeps) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// Show GET /
// Decodifica el token sin verificar firma solo para mostrar usuario y expiración.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	s := h.deps.scopeFor(c)
	data := dashboardPage{page: page{Title: "Dashboard", AppName: h.deps.AppName, Authenticated: true}}
	if tok, ok := s.store.Get(); ok {
		if info, err := pkgjwt.Inspect(tok); err == nil {
			data.Token = info
		} else {
			s.log.Debug().Err(err).Msg("token opaco, sin datos para el dashboard")
		}
	}
	return render(c, fiber.StatusOK, "dashboard", data)
}
