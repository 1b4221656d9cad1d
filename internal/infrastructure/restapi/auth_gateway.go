package restapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

const loginPath = "/auth/login"

var _ repository.AuthGateway = (*AuthGateway)(nil)

// loginRequest cuerpo que espera el backend en /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// AuthGateway implementa repository.AuthGateway sobre la API REST.
type AuthGateway struct {
	api *Client
}

// NewAuthGateway construye el gateway de login.
func NewAuthGateway(api *Client) *AuthGateway {
	return &AuthGateway{api: api}
}

// Login POST /auth/login (no autenticado). Devuelve "" si la respuesta no trae token.
func (g *AuthGateway) Login(ctx context.Context, cred repository.Credentials) (string, error) {
	raw, err := g.api.Request(ctx, http.MethodPost, loginPath, loginRequest{
		Username: cred.Identifier,
		Password: cred.Secret,
	}, false)
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// 2xx sin JSON: equivale a una respuesta sin token
		return "", nil
	}
	return out.Token, nil
}
