package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customer-portal/internal/application/auth"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
)

// AuthHandler formulario de login y logout.
type AuthHandler struct {
	deps RouterDeps
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(deps RouterDeps) *AuthHandler {
	return &AuthHandler{deps: deps}
}

// controller arma el LoginController sobre el scope de la petición.
func (h *AuthHandler) controller(c *fiber.Ctx) (*auth.LoginController, *requestScope) {
	s := h.deps.scopeFor(c)
	return auth.NewLoginController(restapi.NewAuthGateway(s.api), s.store, s.nav, s.log), s
}

// Show GET /login
func (h *AuthHandler) Show(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, "", c.Query("redirect"), "")
}

// Login POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, in.Username, in.Redirect, err.Error())
	}

	lc, s := h.controller(c)
	err := lc.ReturnTo(in.Redirect).Submit(c.UserContext(), in.Username, in.Password)
	if err != nil {
		status := fiber.StatusUnauthorized
		if errors.Is(err, domain.ErrTransportFailure) {
			status = fiber.StatusBadGateway
		}
		return h.renderForm(c, status, in.Username, in.Redirect, lc.Snapshot().Error)
	}
	_, err = s.redirected(c)
	return err
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	lc, s := h.controller(c)
	if err := lc.Logout(); err != nil {
		return err
	}
	_, err := s.redirected(c)
	return err
}

func (h *AuthHandler) renderForm(c *fiber.Ctx, status int, username, redirect, msg string) error {
	return render(c, status, "login", loginPage{
		page:     page{Title: "Sign in", AppName: h.deps.AppName},
		Username: username,
		Redirect: ports.SafeRedirect(redirect, ""),
		Error:    msg,
	})
}
