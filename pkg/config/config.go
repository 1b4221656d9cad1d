package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del portal.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig ubicación de la API REST de clientes.
// Host y puerto se conocen al arrancar; el prefijo /api es fijo.
type APIConfig struct {
	Host           string
	Port           int
	TimeoutSeconds int
}

// BaseURL devuelve la URL base con la forma http://<host>:<port>/api.
func (c APIConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d/api", c.Host, c.Port)
}

// Timeout devuelve el timeout por petición saliente.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig dónde se persiste el bearer token.
type SessionConfig struct {
	CookieName   string // portal web: cookie con el token
	CookieSecure bool
	File         string // CLI: vacío = $XDG_CONFIG_HOME/customer-portal/session.json
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_HOST, API_PORT, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "customer-portal"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		API: APIConfig{
			Host:           getString(v, "API_HOST", "localhost"),
			Port:           getInt(v, "API_PORT", 8080),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "token"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
			File:         getString(v, "SESSION_FILE", ""),
		},
	}

	if cfg.API.Host == "" {
		return nil, fmt.Errorf("config: API_HOST vacío")
	}
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return nil, fmt.Errorf("config: API_PORT inválido: %d", cfg.API.Port)
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "token"
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
