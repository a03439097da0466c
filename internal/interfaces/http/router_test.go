package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Timesheet-api/internal/interfaces/http"
)

// newServer arma la API completa sobre el store en memoria.
func newServer(t *testing.T, allowRegistration bool) *fiber.App {
	t.Helper()
	db := memory.NewStore()
	runner := memory.NewTxRunner(db)
	users := memory.NewUserRepository(db)
	projects := memory.NewProjectRepository(db)
	entries := memory.NewTimeEntryRepository(db)
	invoices := memory.NewInvoiceRepository(db)
	pms := memory.NewPaymentMethodRepository(db)
	settings := memory.NewCompanySettingsRepository(db)
	cfg := billing.Config{DefaultCurrency: "BRL", PaymentLinkDomain: "stripe.com"}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:            auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProjectUC:         usecase.NewProjectUseCase(projects, entries),
		TimeEntryUC:       usecase.NewTimeEntryUseCase(entries, projects),
		ClientUC:          usecase.NewClientUseCase(runner, users),
		CompanyUC:         usecase.NewCompanyUseCase(settings),
		PaymentMethodUC:   billing.NewPaymentMethodUseCase(runner, pms),
		CreateInvoice:     billing.NewCreateInvoiceUseCase(runner, entries, pms, users, settings, cfg),
		InvoiceUC:         billing.NewInvoiceUseCase(runner, invoices, entries, pms, cfg),
		DocumentUC:        billing.NewDocumentUseCase(invoices, entries, pms, pdf.NewMarotoPDFGenerator(), xlsx.NewExcelizeExporter()),
		JWTSecret:         testJWTSecret,
		AllowRegistration: allowRegistration,
	})
	return app
}

// call ejecuta una petición JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var out dto.LoginResponse
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out.Token
}

func registerAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return login(t, app, "admin@example.com", "secreto")
}

func TestRegister_Deshabilitado(t *testing.T) {
	app := newServer(t, false)
	var body dto.ErrorResponse
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "a@example.com", Password: "secreto"}, &body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "REGISTRATION_DISABLED", body.Code)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newServer(t, true)
	registerAdmin(t, app)

	var body dto.ErrorResponse
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@example.com", Password: "incorrecta"}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health("timesheet-api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvoiceFlow(t *testing.T) {
	app := newServer(t, true)
	token := registerAdmin(t, app)

	// Proyecto y registros
	var project dto.ProjectResponse
	resp := call(t, app, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "Web", "hourly_rate": 50, "currency": "USD", "activities": []string{"dev"},
	}, &project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, e := range []map[string]any{
		{"project_id": project.ID, "activity": "dev", "description": "API", "hours": 2, "date": "2024-01-10"},
		{"project_id": project.ID, "activity": "dev", "description": "Tests", "hours": 3, "date": "2024-01-12"},
	} {
		resp = call(t, app, http.MethodPost, "/api/time-entries", token, e, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	request := map[string]any{"project_ids": []string{project.ID}, "date_from": "2024-01-01", "date_to": "2024-01-31"}

	// Preview no persiste
	var preview dto.InvoicePreviewResponse
	resp = call(t, app, http.MethodPost, "/api/invoices/preview", token, request, &preview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, preview.Items, 2)

	// Crear
	var created dto.CreateInvoiceResponse
	resp = call(t, app, http.MethodPost, "/api/invoices", token, request, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "INV-0001", created.InvoiceNumber)
	assert.Equal(t, "draft", created.Status)
	assert.True(t, created.TotalHours.Equal(decimal.NewFromInt(5)))
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, 2, created.ItemsCount)

	// Sin registros elegibles
	var errBody dto.ErrorResponse
	resp = call(t, app, http.MethodPost, "/api/invoices", token, request, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_ELIGIBLE_ENTRIES", errBody.Code)

	// Detalle
	var detail dto.InvoiceResponse
	resp = call(t, app, http.MethodGet, "/api/invoices/"+created.ID, token, nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, detail.Items, 2)

	// Enviar y pagar
	resp = call(t, app, http.MethodPatch, "/api/invoices/"+created.ID, token, map[string]any{"status": "sent"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var paid dto.MarkPaidResponse
	resp = call(t, app, http.MethodPost, "/api/invoices/"+created.ID+"/mark-paid", token, nil, &paid)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, paid.Success)
	assert.Equal(t, int64(2), paid.RegistrosAtualizados)

	// Factura pagada: fechas bloqueadas, notas editables, no se elimina
	errBody = dto.ErrorResponse{}
	resp = call(t, app, http.MethodPatch, "/api/invoices/"+created.ID, token, map[string]any{"issue_date": "2024-02-01"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "IMMUTABLE_INVOICE", errBody.Code)

	resp = call(t, app, http.MethodPatch, "/api/invoices/"+created.ID, token, map[string]any{"notes": "gracias"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	errBody = dto.ErrorResponse{}
	resp = call(t, app, http.MethodDelete, "/api/invoices/"+created.ID, token, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", errBody.Code)

	// Los registros quedaron pagados
	var entries []dto.TimeEntryResponse
	resp = call(t, app, http.MethodGet, "/api/time-entries", token, nil, &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, e := range entries {
		assert.True(t, e.Paid)
		assert.True(t, e.Invoiced)
	}

	// Documentos
	resp = call(t, app, http.MethodGet, "/api/invoices/"+created.ID+"/pdf", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "INV-0001.pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/invoices/"+created.ID+"/xlsx", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "INV-0001.xlsx")

	// Listado
	var list []dto.InvoiceSummaryResponse
	resp = call(t, app, http.MethodGet, "/api/invoices", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "paid", list[0].Status)
}

func TestInvoice_NoEncontrada(t *testing.T) {
	app := newServer(t, true)
	token := registerAdmin(t, app)

	var errBody dto.ErrorResponse
	resp := call(t, app, http.MethodGet, "/api/invoices/no-existe", token, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestClient_SoloLectura(t *testing.T) {
	app := newServer(t, true)
	token := registerAdmin(t, app)

	var project dto.ProjectResponse
	resp := call(t, app, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "Web", "hourly_rate": 40, "currency": "BRL",
	}, &project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	call(t, app, http.MethodPost, "/api/projects", token, map[string]any{"name": "Otro", "hourly_rate": 40}, nil)

	resp = call(t, app, http.MethodPost, "/api/clients", token, dto.CreateClientRequest{
		Email: "cliente@example.com", Password: "cliente1", ProjectIDs: []string{project.ID},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	clientToken := login(t, app, "cliente@example.com", "cliente1")

	var projects []dto.ProjectResponse
	resp = call(t, app, http.MethodGet, "/api/projects", clientToken, nil, &projects)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, projects, 1, "solo ve los proyectos asignados")
	assert.Equal(t, project.ID, projects[0].ID)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/invoices"},
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/payment-methods"},
		{http.MethodGet, "/api/settings/company"},
		{http.MethodGet, "/api/clients"},
	} {
		resp = call(t, app, route.method, route.path, clientToken, map[string]any{}, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, route.method+" "+route.path)
	}
}
