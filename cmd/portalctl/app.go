package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/application/guard"
	"github.com/jhoicas/customer-portal/internal/application/ports"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
	"github.com/jhoicas/customer-portal/pkg/config"
	"github.com/jhoicas/customer-portal/pkg/logger"
)

// Código de salida cuando hace falta volver a iniciar sesión.
const exitAuth = 2

// cliApp colaboradores de una ejecución del CLI.
type cliApp struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *session.FileStore
	api   *restapi.Client
	nav   *hintNavigator
	guard *guard.RouteGuard
}

// hintNavigator traduce las navegaciones a mensajes en out.
// Con quiet solo registra el destino (logout vuelve a login sin que sea un error).
type hintNavigator struct {
	out     io.Writer
	quiet   bool
	toLogin bool
}

func (n *hintNavigator) Navigate(route string) {
	if !strings.HasPrefix(route, ports.RouteLogin) {
		return
	}
	n.toLogin = true
	if !n.quiet {
		fmt.Fprintln(n.out, "Not signed in. Run: portalctl login -u USER")
	}
}

func newCLIApp(verbose bool) *cliApp {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: os.Stderr}).Zerolog()

	path := cfg.Session.File
	if path == "" {
		if path, err = session.DefaultSessionPath(); err != nil {
			fail(err)
		}
	}
	store, err := session.NewFileStore(path)
	if err != nil {
		fail(err)
	}

	nav := &hintNavigator{out: os.Stderr}
	api := restapi.NewClient(cfg.API.BaseURL(),
		restapi.WithTimeout(cfg.API.Timeout()),
		restapi.WithLogger(log),
	).WithSession(store)

	return &cliApp{
		cfg:   cfg,
		log:   log,
		store: store,
		api:   api,
		nav:   nav,
		guard: guard.NewRouteGuard(store, nav, log),
	}
}

// exitCode: exitAuth si el comando acabó mandando a login, 1 con error, 0 si no.
func exitCode(nav *hintNavigator, err error) int {
	switch {
	case nav.toLogin:
		return exitAuth
	case err != nil:
		return 1
	}
	return 0
}

// exit termina según el resultado; con exitAuth el hint ya se imprimió.
func (a *cliApp) exit(err error) {
	switch exitCode(a.nav, err) {
	case exitAuth:
		os.Exit(exitAuth)
	case 1:
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
