package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	infrapdf "github.com/jhoicas/customer-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/customer-portal/internal/interfaces/http"
	"github.com/jhoicas/customer-portal/pkg/config"
	"github.com/jhoicas/customer-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL()).
		Msg("iniciando portal")

	// Cliente de la API REST; cada petición del portal lo liga a su cookie.
	apiClient := restapi.NewClient(cfg.API.BaseURL(),
		restapi.WithTimeout(cfg.API.Timeout()),
		restapi.WithLogger(log.Zerolog()),
		restapi.WithMetrics(restapi.NewMetrics(prometheus.DefaultRegisterer)),
	)

	app := httpRouter.NewApp(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	}, log.Zerolog())
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		API:     apiClient,
		Cookie: session.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		PDF:     infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Metrics: prometheus.DefaultGatherer,
		Log:     log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("portal detenido")
}
