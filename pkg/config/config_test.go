package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL())
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.False(t, cfg.Session.CookieSecure)
}

func TestFromViper_BaseURLDesdeHostYPuerto(t *testing.T) {
	v := viper.New()
	v.Set("API_HOST", "10.0.0.7")
	v.Set("API_PORT", "9090")
	v.Set("API_TIMEOUT_SECONDS", "3")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.7:9090/api", cfg.API.BaseURL())
	assert.Equal(t, 3*time.Second, cfg.API.Timeout())
}

func TestFromViper_PuertoInvalido(t *testing.T) {
	v := viper.New()
	v.Set("API_PORT", "0")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("API_HOST", "api.internal")
	t.Setenv("API_PORT", "8181")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:8181/api", cfg.API.BaseURL())
	assert.True(t, cfg.Session.CookieSecure)
}
