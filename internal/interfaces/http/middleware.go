package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/domain"
)

// Locals keys.
const (
	LocalRequestID  = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// RequestLogger asigna un request id y registra cada petición al terminar.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		err := c.Next()
		if err != nil {
			// el ErrorHandler fija el status; se llama aquí para que el log lo vea
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición atendida")
		return nil
	}
}

// RequestID devuelve el id asignado por RequestLogger ("" si no pasó por él).
func RequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// RequireSession corta las rutas protegidas sin cookie de sesión: 303 a
// /login con la ruta original como redirect. No valida el token.
func RequireSession(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := deps.scopeFor(c)
		if s.guard.EnsureAuthenticated(c.Path()) {
			return c.Next()
		}
		_, err := s.redirected(c)
		return err
	}
}

// ErrorHandler responde dto.ErrorResponse y registra los errores no previstos.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		resp := dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"}

		var ferr *fiber.Error
		var apiErr *domain.APIError
		switch {
		case errors.As(err, &ferr):
			code = ferr.Code
			resp = dto.ErrorResponse{Code: codeName(code), Message: ferr.Message}
		case errors.As(err, &apiErr):
			code = fiber.StatusBadGateway
			resp = dto.ErrorResponse{Code: apiErr.Kind.String(), Message: apiErr.Message}
		}

		ev := log.Warn()
		if code >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).Str("request_id", RequestID(c)).Str("path", c.Path()).Int("status", code).Msg("error en handler")
		return c.Status(code).JSON(resp)
	}
}

func codeName(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadGateway:
		return "UPSTREAM"
	}
	if code >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "REQUEST"
}
