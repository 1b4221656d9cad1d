package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-portal/internal/domain/entity"
	"github.com/jhoicas/customer-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	"github.com/jhoicas/customer-portal/internal/infrastructure/session"
	apphttp "github.com/jhoicas/customer-portal/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// API falsa
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	mu sync.Mutex

	token      string // token válido; cualquier otro bearer recibe 401
	loginReply string // cuerpo de /auth/login con status 200; "" = 401 con loginError
	loginError string

	customers    []entity.Customer
	createStatus int // 0 = 201
	createReply  string
	listStatus   int // 0 = 200

	listCalls   int
	createCalls int
	created     []map[string]string
	bearers     []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/api/auth/login" {
		if f.loginReply == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, f.loginError)
			return
		}
		_, _ = io.WriteString(w, f.loginReply)
		return
	}

	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.bearers = append(f.bearers, bearer)
	if bearer != f.token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.URL.Path == "/api/customers" && r.Method == http.MethodGet:
		f.listCalls++
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(f.customers)
	case r.URL.Path == "/api/customers" && r.Method == http.MethodPost:
		f.createCalls++
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.created = append(f.created, in)
		if f.createStatus != 0 {
			w.WriteHeader(f.createStatus)
			_, _ = io.WriteString(w, f.createReply)
			return
		}
		c := entity.Customer{ID: "9", Name: in["name"], Branch: in["branch"], Period: in["period"],
			ClientName: in["clientName"], Status: entity.CustomerStatus(in["status"]), CreatedAt: "2024-06-01T00:00:00Z"}
		f.customers = append(f.customers, c)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) counts() (list, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T, api *fakeAPI) (*fiber.App, *prometheus.Registry) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	client := restapi.NewClient(srv.URL+"/api", restapi.WithMetrics(restapi.NewMetrics(reg)))

	app := apphttp.NewApp(fiber.Config{}, zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AppName: "portal-test",
		API:     client,
		Cookie:  session.CookieOptions{Name: "token"},
		PDF:     pdf.NewMarotoPDFGenerator("portal-test"),
		Metrics: reg,
		Log:     zerolog.Nop(),
	})
	return app, reg
}

func do(t *testing.T, app *fiber.App, method, target, cookie string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.Header.Set("Cookie", "token="+cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func tokenCookie(resp *http.Response) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c.Value, true
		}
	}
	return "", false
}

func newCustomerForm() url.Values {
	return url.Values{
		"name":       {"Nuevo"},
		"branch":     {"Surabaya"},
		"period":     {"2024-Q2"},
		"clientName": {"Citra"},
	}
}

var seed = []entity.Customer{
	{ID: "1", Name: "A", Branch: "Jakarta", Period: "2024", ClientName: "Ani", Status: entity.StatusActive, CreatedAt: "2024-01-01T00:00:00Z"},
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{})
	resp, body := do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestLogin_TokenGuardaCookieYRedirige(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{loginReply: `{"token":"abc"}`})

	resp, _ := do(t, app, http.MethodPost, "/login", "", url.Values{
		"username": {"admin"}, "password": {"s3cret"}, "redirect": {"/customers"},
	})

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/customers", resp.Header.Get("Location"))
	tok, ok := tokenCookie(resp)
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
}

func TestLogin_RedirectExternoVaALanding(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{loginReply: `{"token":"abc"}`})

	resp, _ := do(t, app, http.MethodPost, "/login", "", url.Values{
		"username": {"admin"}, "password": {"s3cret"}, "redirect": {"https://evil.example/"},
	})

	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLogin_SinTokenNoEscribeCookie(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{loginReply: `{}`})

	resp, body := do(t, app, http.MethodPost, "/login", "", url.Values{"username": {"admin"}, "password": {"x"}})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "login succeeded but no token returned")
	_, ok := tokenCookie(resp)
	assert.False(t, ok)
}

func TestLogin_MensajeDelBackend(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{loginError: `{"message":"Bad credentials"}`})

	resp, body := do(t, app, http.MethodPost, "/login", "", url.Values{"username": {"admin"}, "password": {"x"}})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Bad credentials")
	assert.Contains(t, body, `value="admin"`)
}

func TestLogin_CamposVacios(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{loginReply: `{"token":"abc"}`})

	resp, body := do(t, app, http.MethodPost, "/login", "", url.Values{"username": {"admin"}})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "all fields are required")
}

func TestLogout_BorraCookie(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{})

	resp, _ := do(t, app, http.MethodPost, "/logout", "abc", nil)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	tok, ok := tokenCookie(resp)
	require.True(t, ok)
	assert.Empty(t, tok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas protegidas
// ──────────────────────────────────────────────────────────────────────────────

func TestProtegidas_SinCookieRedirigenSinLlamarAPI(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed}
	app, _ := buildTestApp(t, api)

	for target, want := range map[string]string{
		"/":                     "/login",
		"/customers":            "/login?redirect=%2Fcustomers",
		"/customers/export.pdf": "/login?redirect=%2Fcustomers%2Fexport.pdf",
	} {
		resp, _ := do(t, app, http.MethodGet, target, "", nil)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, target)
		assert.Equal(t, want, resp.Header.Get("Location"), target)
	}
	list, create := api.counts()
	assert.Zero(t, list)
	assert.Zero(t, create)
	assert.Empty(t, api.bearers)
}

func TestCustomers_ListaConBearer(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed}
	app, _ := buildTestApp(t, api)

	resp, body := do(t, app, http.MethodGet, "/customers", "abc", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Jakarta")
	assert.Contains(t, body, "Ani")
	assert.NotContains(t, body, `id="create"`)
	assert.Contains(t, body, `<button type="button" disabled>Edit</button>`)
	assert.Contains(t, body, `<button type="button" disabled>Delete</button>`)
	assert.Equal(t, []string{"abc"}, api.bearers)
}

func TestCustomers_401BorraCookieYRedirigeUnaVez(t *testing.T) {
	api := &fakeAPI{token: "otro"}
	app, _ := buildTestApp(t, api)

	resp, _ := do(t, app, http.MethodGet, "/customers", "vencido", nil)

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fcustomers", resp.Header.Get("Location"))
	tok, ok := tokenCookie(resp)
	require.True(t, ok)
	assert.Empty(t, tok)
	assert.Len(t, api.bearers, 1)
}

func TestCustomers_FalloMuestraErrorEnLinea(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{token: "abc", listStatus: http.StatusInternalServerError})

	resp, body := do(t, app, http.MethodGet, "/customers", "abc", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "request failed: Internal Server Error")
}

func TestCustomers_NuevoAbrePanelConPending(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{token: "abc"})

	_, body := do(t, app, http.MethodGet, "/customers?new=1", "abc", nil)

	assert.Contains(t, body, `id="create"`)
	assert.Contains(t, body, `<option value="Pending" selected>`)
}

func TestCreate_ExitoUnaRecargaYPanelCerrado(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed}
	app, _ := buildTestApp(t, api)

	resp, body := do(t, app, http.MethodPost, "/customers", "abc", newCustomerForm())

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	list, create := api.counts()
	assert.Equal(t, 1, create)
	assert.Equal(t, 1, list, "exactamente una recarga")
	assert.Equal(t, "Pending", api.created[0]["status"])
	assert.Equal(t, "Citra", api.created[0]["clientName"])
	assert.NotContains(t, body, `id="create"`)
	assert.Contains(t, body, "Surabaya")
}

func TestCreate_ValidacionNoLlamaAPI(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed}
	app, _ := buildTestApp(t, api)
	form := newCustomerForm()
	form.Set("period", "  ")

	resp, body := do(t, app, http.MethodPost, "/customers", "abc", form)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	_, create := api.counts()
	assert.Zero(t, create)
	assert.Contains(t, body, "all fields are required")
	assert.Contains(t, body, `id="create"`)
	assert.Contains(t, body, `value="Surabaya"`)
}

func TestCreate_EstadoInvalidoMensajePropio(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed}
	app, _ := buildTestApp(t, api)
	form := newCustomerForm()
	form.Set("status", "borrado")

	resp, body := do(t, app, http.MethodPost, "/customers", "abc", form)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	_, create := api.counts()
	assert.Zero(t, create)
	assert.Contains(t, body, "status must be Pending, Active or Inactive")
	assert.NotContains(t, body, "all fields are required")
}

func TestCreate_FalloConservaBorrador(t *testing.T) {
	api := &fakeAPI{token: "abc", customers: seed, createStatus: http.StatusBadRequest, createReply: `{"message":"period invalid"}`}
	app, _ := buildTestApp(t, api)

	resp, body := do(t, app, http.MethodPost, "/customers", "abc", newCustomerForm())

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "period invalid")
	assert.Contains(t, body, `id="create"`)
	assert.Contains(t, body, `value="2024-Q2"`)
	assert.Contains(t, body, "Jakarta", "el listado sigue visible")
}

func TestExport_PDF(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{token: "abc", customers: seed})

	resp, body := do(t, app, http.MethodGet, "/customers/export.pdf", "abc", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "customers_")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestExport_FalloDeAPIEsJSON(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{token: "abc", listStatus: http.StatusServiceUnavailable})

	resp, body := do(t, app, http.MethodGet, "/customers/export.pdf", "abc", nil)

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, `"code":"UPSTREAM"`)
}

func TestDashboard_MuestraUsuarioDelJWT(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":      "42",
		"username": "ani",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("no-importa"))
	require.NoError(t, err)
	app, _ := buildTestApp(t, &fakeAPI{token: tok})

	resp, body := do(t, app, http.MethodGet, "/", tok, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<strong>ani</strong>")
}

func TestMetrics_ExponeLlamadasSalientes(t *testing.T) {
	app, _ := buildTestApp(t, &fakeAPI{token: "abc", customers: seed})
	_, _ = do(t, app, http.MethodGet, "/customers", "abc", nil)

	resp, body := do(t, app, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `portal_api_requests_total{method="GET",outcome="ok",path="/customers"} 1`)
}
