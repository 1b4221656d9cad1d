package guard

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

// RouteGuard bloquea las vistas protegidas cuando no hay token.
// No valida el token contra el servidor: eso lo hace la primera llamada autenticada.
type RouteGuard struct {
	session repository.SessionStore
	nav     ports.Navigator
	log     zerolog.Logger
}

// NewRouteGuard construye el guard.
func NewRouteGuard(session repository.SessionStore, nav ports.Navigator, log zerolog.Logger) *RouteGuard {
	return &RouteGuard{session: session, nav: nav, log: log}
}

// EnsureAuthenticated devuelve true si hay token. Si no, navega a login
// (con destination como redirect) y devuelve false; el llamador debe cortar
// su secuencia de carga en ese momento.
func (g *RouteGuard) EnsureAuthenticated(destination string) bool {
	if g.session.IsAuthenticated() {
		return true
	}
	g.log.Debug().Str("destination", destination).Msg("sin sesión, redirigiendo a login")
	g.nav.Navigate(ports.LoginRoute(destination))
	return false
}

// Revoke borra la sesión sin navegar. Para un 401 que llega con la vista ya abandonada.
func (g *RouteGuard) Revoke() {
	if err := g.session.Clear(); err != nil {
		g.log.Error().Err(err).Msg("no se pudo borrar la sesión")
	}
	g.log.Info().Msg("sesión rechazada por la API con la vista inactiva")
}

// Expire borra la sesión y navega a login. Es la única reacción válida a un 401.
func (g *RouteGuard) Expire(destination string) {
	if err := g.session.Clear(); err != nil {
		g.log.Error().Err(err).Msg("no se pudo borrar la sesión")
	}
	g.log.Info().Str("destination", destination).Msg("sesión rechazada por la API")
	g.nav.Navigate(ports.LoginRoute(destination))
}
