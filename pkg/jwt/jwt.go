package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo datos legibles de un bearer token con forma JWT.
// Solo sirven para mostrar en pantalla: el portal no tiene el secreto y no
// valida la firma; la validez la confirma la API en la primera llamada.
type TokenInfo struct {
	Subject   string
	Username  string
	ExpiresAt *time.Time
}

// Expired indica si el claim exp ya pasó respecto de now. Sin exp devuelve false.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Inspect decodifica los claims del token sin verificar la firma.
// Devuelve error si el token no es un JWT (los tokens opacos son válidos para la sesión).
func Inspect(tokenString string) (*TokenInfo, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token no decodificable: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	for _, key := range []string{"username", "preferred_username", "email"} {
		if s, ok := claims[key].(string); ok && s != "" {
			info.Username = s
			break
		}
	}
	if info.Username == "" {
		info.Username = info.Subject
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info, nil
}
