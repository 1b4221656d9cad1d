package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string
	API     *restapi.Client // sin sesión; cada petición usa API.WithSession(cookie)
	Cookie  session.CookieOptions
	PDF     customer.ListPDFGenerator
	Metrics prometheus.Gatherer // nil = sin /metrics
	Log     zerolog.Logger
}

// Router registra las rutas del portal.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps)
	app.Get("/login", authHandler.Show)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren cookie de sesión)
	requireSession := RequireSession(deps)

	dashboardHandler := NewDashboardHandler(deps)
	app.Get("/", requireSession, dashboardHandler.Show)

	customers := app.Group("/customers", requireSession)
	customerHandler := NewCustomerHandler(deps)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/export.pdf", customerHandler.Export)
}

// NewApp construye la app Fiber con el ErrorHandler y el logger de peticiones del portal.
func NewApp(cfg fiber.Config, log zerolog.Logger) *fiber.App {
	cfg.ErrorHandler = ErrorHandler(log)
	app := fiber.New(cfg)
	app.Use(RequestLogger(log))
	return app
}
