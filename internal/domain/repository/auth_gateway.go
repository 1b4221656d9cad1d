package repository

import "context"

// Credentials identificador y secreto que se envían al endpoint de login.
type Credentials struct {
	Identifier string
	Secret     string
}

// AuthGateway define el puerto de autenticación contra la API (DIP).
type AuthGateway interface {
	// Login devuelve el token emitido por el backend; "" si la respuesta no lo trae.
	Login(ctx context.Context, cred Credentials) (string, error)
}
