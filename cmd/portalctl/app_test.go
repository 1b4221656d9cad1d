package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-portal/internal/application/auth"
	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
)

func TestHintNavigator_Navigate(t *testing.T) {
	tests := []struct {
		name      string
		route     string
		quiet     bool
		wantLogin bool
		wantHint  bool
	}{
		{"login", "/login", false, true, true},
		{"login con redirect", "/login?redirect=%2Fcustomers", false, true, true},
		{"dashboard", "/", false, false, false},
		{"customers", "/customers", false, false, false},
		{"login silencioso", "/login", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			n := &hintNavigator{out: &out, quiet: tt.quiet}

			n.Navigate(tt.route)

			assert.Equal(t, tt.wantLogin, n.toLogin)
			if tt.wantHint {
				assert.Contains(t, out.String(), "portalctl login")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		toLogin bool
		err     error
		want    int
	}{
		{"ok", false, nil, 0},
		{"error", false, errors.New("boom"), 1},
		{"sesión rechazada", true, domain.ErrAuthRejected, exitAuth},
		{"a login sin error", true, nil, exitAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(&hintNavigator{toLogin: tt.toLogin}, tt.err))
		})
	}
}

func TestLogout_PorControladorSinHint(t *testing.T) {
	store, err := session.NewFileStore(t.TempDir() + "/session")
	require.NoError(t, err)
	require.NoError(t, store.Set("abc"))

	var out bytes.Buffer
	nav := &hintNavigator{out: &out, quiet: true}
	api := restapi.NewClient("http://127.0.0.1:0").WithSession(store)
	lc := auth.NewLoginController(restapi.NewAuthGateway(api), store, nav, zerolog.Nop())

	require.NoError(t, lc.Logout())

	_, ok := store.Get()
	assert.False(t, ok)
	assert.True(t, nav.toLogin)
	assert.Empty(t, out.String())
}
