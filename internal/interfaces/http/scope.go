package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/guard"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
)

// Locals key del scope de la petición.
const localScope = "portal_scope"

// redirectNavigator anota la primera navegación pedida por los controladores;
// el handler la convierte en un 303 al terminar.
type redirectNavigator struct {
	route string
}

func (n *redirectNavigator) Navigate(route string) {
	if n.route == "" {
		n.route = route
	}
}

// requestScope colaboradores que viven lo que dura una petición.
type requestScope struct {
	store *session.CookieStore
	api   *restapi.Client
	nav   *redirectNavigator
	guard *guard.RouteGuard
	log   zerolog.Logger
}

// scopeFor devuelve el scope de c, creándolo la primera vez.
func (d RouterDeps) scopeFor(c *fiber.Ctx) *requestScope {
	if s, ok := c.Locals(localScope).(*requestScope); ok {
		return s
	}
	store := session.NewCookieStore(c, d.Cookie)
	nav := &redirectNavigator{}
	log := d.Log.With().Str("request_id", RequestID(c)).Logger()
	s := &requestScope{
		store: store,
		api:   d.API.WithSession(store),
		nav:   nav,
		guard: guard.NewRouteGuard(store, nav, log),
		log:   log,
	}
	c.Locals(localScope, s)
	return s
}

// redirected emite el 303 si algún controlador pidió navegar.
func (s *requestScope) redirected(c *fiber.Ctx) (bool, error) {
	if s.nav.route == "" {
		return false, nil
	}
	return true, c.Redirect(s.nav.route, fiber.StatusSeeOther)
}
