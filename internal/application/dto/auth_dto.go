package dto

import "strings"

// LoginForm entrada del formulario de login. Redirect es el destino protegido original.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Redirect string `form:"redirect"`
}

// Normalize recorta espacios del usuario; la contraseña va tal cual.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}
