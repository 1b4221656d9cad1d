package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

// Verificar en tiempo de compilación que CookieStore implementa SessionStore.
var _ repository.SessionStore = (*CookieStore)(nil)

// CookieOptions atributos de la cookie que guarda el token.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge int // segundos; 0 = cookie de sesión del navegador
}

// CookieStore SessionStore del portal web: el almacenamiento durable es la
// cookie del navegador. Vive lo que dura una petición (*fiber.Ctx).
type CookieStore struct {
	c      *fiber.Ctx
	opts   CookieOptions
	token  string
	loaded bool
}

// NewCookieStore enlaza el store a la petición actual.
func NewCookieStore(c *fiber.Ctx, opts CookieOptions) *CookieStore {
	if opts.Name == "" {
		opts.Name = "token"
	}
	return &CookieStore{c: c, opts: opts}
}

// Get devuelve el token de la cookie; refleja Set/Clear hechos en la misma petición.
func (s *CookieStore) Get() (string, bool) {
	if !s.loaded {
		s.token = s.c.Cookies(s.opts.Name)
		s.loaded = true
	}
	return s.token, s.token != ""
}

func (s *CookieStore) Set(token string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   s.opts.MaxAge,
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.token, s.loaded = token, true
	return nil
}

func (s *CookieStore) Clear() error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.opts.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.token, s.loaded = "", true
	return nil
}

func (s *CookieStore) IsAuthenticated() bool {
	_, ok := s.Get()
	return ok
}
