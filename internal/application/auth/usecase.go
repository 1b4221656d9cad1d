package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

// MsgLoginFailed texto cuando el backend no explica el fallo.
const MsgLoginFailed = "invalid credentials or server unreachable"

// LoginState estado del formulario de login.
type LoginState struct {
	Submitting bool
	Error      string
}

// LoginController flujo de login y logout. Es el único que escribe el token.
type LoginController struct {
	gw      repository.AuthGateway
	session repository.SessionStore
	nav     ports.Navigator
	log     zerolog.Logger
	landing string

	mu    sync.Mutex
	state LoginState
}

// NewLoginController construye el flujo; tras el login navega a la landing protegida.
func NewLoginController(gw repository.AuthGateway, session repository.SessionStore, nav ports.Navigator, log zerolog.Logger) *LoginController {
	return &LoginController{gw: gw, session: session, nav: nav, log: log, landing: ports.RouteDashboard}
}

// ReturnTo fija el destino post-login. Solo se aceptan rutas locales; el resto cae en la landing.
func (c *LoginController) ReturnTo(target string) *LoginController {
	c.landing = ports.SafeRedirect(target, ports.RouteDashboard)
	return c
}

// Landing destino al que navegará un login exitoso.
func (c *LoginController) Landing() string { return c.landing }

// Snapshot copia del estado para renderizar.
func (c *LoginController) Snapshot() LoginState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit intenta un único login. Con otro en vuelo devuelve ErrBusy sin emitir nada.
func (c *LoginController) Submit(ctx context.Context, identifier, secret string) error {
	c.mu.Lock()
	if c.state.Submitting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.state.Submitting = true
	c.state.Error = ""
	c.mu.Unlock()

	err := c.submit(ctx, identifier, secret)

	c.mu.Lock()
	c.state.Submitting = false
	if err != nil {
		c.state.Error = loginMessage(err)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Info().Str("identifier", identifier).Err(err).Msg("login fallido")
		return err
	}
	c.log.Info().Str("identifier", identifier).Msg("login correcto")
	c.nav.Navigate(c.landing)
	return nil
}

func (c *LoginController) submit(ctx context.Context, identifier, secret string) error {
	token, err := c.gw.Login(ctx, repository.Credentials{Identifier: identifier, Secret: secret})
	if err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return domain.ErrMissingToken
	}
	return c.session.Set(token)
}

// Logout borra la sesión y vuelve a login.
func (c *LoginController) Logout() error {
	err := c.session.Clear()
	if err != nil {
		c.log.Error().Err(err).Msg("no se pudo borrar la sesión")
	}
	c.nav.Navigate(ports.RouteLogin)
	return err
}

// loginMessage: mensaje del backend tal cual; si no hay, el genérico.
func loginMessage(err error) string {
	if errors.Is(err, domain.ErrMissingToken) {
		return domain.ErrMissingToken.Error()
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return MsgLoginFailed
}
