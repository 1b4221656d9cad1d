package http

import (
	"github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	pkgjwt "github.com/jhoicas/customer-portal/pkg/jwt"
)

// page datos comunes a todas las plantillas.
type page struct {
	Title         string
	AppName       string
	Authenticated bool
}

type loginPage struct {
	page
	Username string
	Redirect string
	Error    string
}

type dashboardPage struct {
	page
	Token *pkgjwt.TokenInfo // nil si el token no es un JWT
}

type customersPage struct {
	page
	List    customer.ListState
	Create  customer.CreateState
	Form    dto.CustomerForm
	Invalid map[string]bool
}
