// Package restapi implementa el cliente de la API REST de clientes y los
// adaptadores de los puertos de dominio (CustomerRepository, AuthGateway)
// sobre ese cliente.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/customer-portal/internal/domain"
	"github.com/jhoicas/customer-portal/internal/domain/repository"
)

const (
	maxResponseBytes = 1 << 20
	requestIDHeader  = "X-Request-ID"
)

// Client emite peticiones a la API y normaliza el resultado:
// cuerpo JSON crudo en éxito, *domain.APIError en fallo.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    repository.SessionStore
	log        zerolog.Logger
	metrics    *Metrics
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (timeout incluido).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout fija el timeout de red por petición.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// WithLogger registra cada llamada saliente.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics activa la instrumentación prometheus.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient construye el cliente. baseURL tiene la forma http://host:port/api.
// Las llamadas autenticadas necesitan un SessionStore (ver WithSession).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession devuelve una copia del cliente ligada a store. El http.Client se comparte.
func (c *Client) WithSession(store repository.SessionStore) *Client {
	cp := *c
	cp.session = store
	return &cp
}

// BaseURL URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Request ejecuta method sobre path. body se serializa como JSON si no es nil.
// Con authenticated=true adjunta el bearer token del SessionStore; sin token
// devuelve domain.ErrAuthRequired sin emitir la petición.
func (c *Client) Request(ctx context.Context, method, path string, body any, authenticated bool) (json.RawMessage, error) {
	var token string
	if authenticated {
		var ok bool
		if c.session != nil {
			token, ok = c.session.Get()
		}
		if !ok {
			return nil, domain.ErrAuthRequired
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("restapi: serializar body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("restapi: crear request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, path, domain.KindTransportFailure.String(), time.Since(start))
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("API sin respuesta")
		msg := "server unreachable"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "server did not respond in time"
		}
		return nil, &domain.APIError{Kind: domain.KindTransportFailure, Message: msg}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)

	ev := c.log.Debug()
	if resp.StatusCode >= 400 {
		ev = c.log.Warn()
	}
	ev.Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Str("request_id", requestID).Dur("elapsed", elapsed).Msg("API")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeFailure(resp, raw)
		c.metrics.observe(method, path, apiErr.Kind.String(), elapsed)
		return nil, apiErr
	}
	if readErr != nil {
		c.metrics.observe(method, path, domain.KindTransportFailure.String(), elapsed)
		return nil, &domain.APIError{Kind: domain.KindTransportFailure, Status: resp.StatusCode, Message: "incomplete response from server"}
	}
	c.metrics.observe(method, path, "ok", elapsed)
	return json.RawMessage(raw), nil
}

// errorBody formas de error que devuelve el backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// normalizeFailure traduce un status no-2xx a *domain.APIError:
// mensaje del cuerpo JSON si existe, si no "request failed: <status text>".
func normalizeFailure(resp *http.Response, raw []byte) *domain.APIError {
	detail := ""
	var eb errorBody
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &eb) == nil {
		detail = strings.TrimSpace(eb.Message)
		if detail == "" {
			detail = strings.TrimSpace(eb.Error)
		}
	}
	msg := detail
	if msg == "" {
		msg = "request failed: " + statusText(resp)
	}

	kind := domain.KindRequestFailed
	if resp.StatusCode == http.StatusUnauthorized {
		kind = domain.KindAuthRejected
	}
	return &domain.APIError{Kind: kind, Status: resp.StatusCode, Message: msg, Detail: detail}
}

func statusText(resp *http.Response) string {
	if t := http.StatusText(resp.StatusCode); t != "" {
		return t
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
