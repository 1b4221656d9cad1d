package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/customer-portal/internal/application/auth"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	pkgjwt "github.com/jhoicas/customer-portal/pkg/jwt"
)

func cmdLogin(verbose bool, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "Username")
	password := fs.String("p", "", "Password (prompted on stdin when omitted)")
	fs.Parse(args)

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: portalctl login -u USER [-p PASS]")
		os.Exit(1)
	}
	if *password == "" {
		*password = readPassword()
	}

	in := dto.LoginForm{Username: *username, Password: *password}
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		fail(err)
	}

	a := newCLIApp(verbose)
	lc := auth.NewLoginController(restapi.NewAuthGateway(a.api), a.store, a.nav, a.log)
	if err := lc.Submit(context.Background(), in.Username, in.Password); err != nil {
		fail(fmt.Errorf("%s", lc.Snapshot().Error))
	}
	fmt.Printf("Signed in as %q (session stored in %s)\n", in.Username, a.store.Path())
}

func cmdLogout(verbose bool) {
	a := newCLIApp(verbose)
	a.nav.quiet = true
	lc := auth.NewLoginController(restapi.NewAuthGateway(a.api), a.store, a.nav, a.log)
	if err := lc.Logout(); err != nil {
		fail(err)
	}
	fmt.Println("Signed out")
}

func cmdStatus(verbose bool) {
	a := newCLIApp(verbose)
	tok, ok := a.store.Get()
	if !ok {
		fmt.Println("Not signed in. Run: portalctl login -u USER")
		os.Exit(exitAuth)
	}

	fmt.Printf("Session file: %s\n", a.store.Path())
	fmt.Printf("API:          %s\n", a.api.BaseURL())
	info, err := pkgjwt.Inspect(tok)
	if err != nil {
		fmt.Println("Token:        opaque (not a JWT)")
		return
	}
	fmt.Printf("User:         %s\n", info.Username)
	if info.ExpiresAt != nil {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		fmt.Printf("Expires:      %s (%s)\n", info.ExpiresAt.Local().Format(time.RFC1123), state)
	}
}

// readPassword lee una línea de stdin. Sin terminal no se oculta el eco.
func readPassword() string {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fail(fmt.Errorf("read password: %w", err))
	}
	return strings.TrimRight(line, "\r\n")
}
