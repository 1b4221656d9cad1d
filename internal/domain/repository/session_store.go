package repository

// SessionStore guarda la única credencial persistida: el bearer token.
// Solo el login escribe; solo logout y el manejo de 401 borran.
type SessionStore interface {
	// Get devuelve el token y si está presente.
	Get() (string, bool)
	Set(token string) error
	Clear() error
	// IsAuthenticated es true sii Get devuelve un token no vacío.
	IsAuthenticated() bool
}
