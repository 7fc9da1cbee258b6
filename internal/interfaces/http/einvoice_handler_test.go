package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-facturx/internal/application/billing"
	"github.com/jhoicas/taller-facturx/internal/application/dto"
	"github.com/jhoicas/taller-facturx/internal/domain/entity"
	domfx "github.com/jhoicas/taller-facturx/internal/domain/facturx"
	infrafx "github.com/jhoicas/taller-facturx/internal/infrastructure/facturx"
	"github.com/jhoicas/taller-facturx/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/taller-facturx/internal/interfaces/http"
	"github.com/jhoicas/taller-facturx/pkg/logger"
)

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(_ context.Context, doc *domfx.InvoiceDocument, _ *domfx.GeneratedDocument) ([]byte, error) {
	return []byte("%PDF-1.4 " + doc.Number), nil
}

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	workshops := memory.NewWorkshopRepository(entity.Workshop{
		ID:      testWorkshopID,
		Name:    "Garage du Centre",
		SIRET:   "73282932000074",
		Address: "12 rue de la Paix, 75002 Paris",
	})
	einvoiceUC := billing.NewEInvoiceUseCase(
		workshops,
		memory.NewArchiveRepository(),
		infrafx.NewGeneratorService(nil),
		infrafx.NewValidatorService(),
		infrafx.NewSealService(),
		billing.EInvoiceOptions{BatchConcurrency: 2, BatchMaxItems: 10},
		log,
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		EInvoiceUC: einvoiceUC,
		PDFUC:      billing.NewPDFUseCase(einvoiceUC, stubPDF{}, nil),
		WorkshopUC: billing.NewWorkshopUseCase(workshops),
		JWTSecret:  testJWTSecret,
		Logger:     log,
	})
	return app
}

const requestBody = `{
  "invoice": {
    "number": "F-2024-0042",
    "issue_date": "2024-03-15",
    "line_items": [
      {"description": "Vidange", "quantity": "1", "unit_price": "100.00", "vat_rate": "20"}
    ],
    "net_total": "100.00",
    "vat_total": "20.00"
  },
  "buyer": {"name": "Client Y", "address": "5 avenue Foch, 69006 Lyon"}
}`

func call(t *testing.T, app *fiber.App, method, path, body, role string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth_Publico(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEInvoices_RequiereToken(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices", requestBody, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEInvoices_CrearYConsultar(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/einvoices", requestBody, apphttp.RoleAccountant)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.EInvoiceResponse](t, resp)
	assert.Equal(t, "F-2024-0042", created.Number)
	assert.Len(t, created.Digest, 64)

	resp = call(t, app, http.MethodGet, "/api/einvoices/F-2024-0042", "", apphttp.RoleAccountant)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.EInvoiceResponse](t, resp)
	assert.Equal(t, created.Digest, got.Digest)

	resp = call(t, app, http.MethodGet, "/api/einvoices/F-2024-0042/xml", "", apphttp.RoleAccountant)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Digest, resp.Header.Get(apphttp.HeaderDocumentDigest))
	xmlBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, created.XML, string(xmlBytes))

	resp = call(t, app, http.MethodGet, "/api/einvoices/F-2024-0042/bundle", "", apphttp.RoleAccountant)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))

	resp = call(t, app, http.MethodGet, "/api/einvoices?limit=5", "", apphttp.RoleAccountant)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.EInvoiceListResponse](t, resp)
	assert.Len(t, list.Items, 1)

	resp = call(t, app, http.MethodPost, "/api/einvoices", requestBody, apphttp.RoleAccountant)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestEInvoices_NumeroConBarra(t *testing.T) {
	app := newAPI(t)
	body := bytes.Replace([]byte(requestBody), []byte("F-2024-0042"), []byte("F/2024/7"), 1)

	resp := call(t, app, http.MethodPost, "/api/einvoices", string(body), apphttp.RoleAdmin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/einvoices/"+url.PathEscape("F/2024/7"), "", apphttp.RoleAdmin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEInvoices_CampoObligatorio422(t *testing.T) {
	app := newAPI(t)
	body := bytes.Replace([]byte(requestBody), []byte(`"name": "Client Y"`), []byte(`"name": ""`), 1)

	resp := call(t, app, http.MethodPost, "/api/einvoices", string(body), apphttp.RoleAdmin)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, billing.CodeMissingField, e.Code)
	assert.Equal(t, "buyer.name", e.Field)
}

func TestEInvoices_CuerpoInvalido(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices", "{no es json", apphttp.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEInvoices_NoEncontrado(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodGet, "/api/einvoices/F-404", "", apphttp.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEInvoices_Preview(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices/preview", requestBody, apphttp.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")

	xmlBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, domfx.Digest(xmlBytes), resp.Header.Get(apphttp.HeaderDocumentDigest))
	assert.Contains(t, string(xmlBytes), "<ram:GrandTotalAmount>120.00</ram:GrandTotalAmount>")
}

func TestEInvoices_Batch(t *testing.T) {
	bad := bytes.Replace([]byte(requestBody), []byte(`"issue_date": "2024-03-15"`), []byte(`"issue_date": "ayer"`), 1)
	body := `{"items": [` + requestBody + `,` + string(bad) + `]}`

	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices/batch", body, apphttp.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BatchResponse](t, resp)
	require.Len(t, out.Items, 2)
	assert.Nil(t, out.Items[0].Error)
	require.NotNil(t, out.Items[1].Error)
	assert.Equal(t, billing.CodeInvalidDate, out.Items[1].Error.Code)
}

func TestEInvoices_PDF(t *testing.T) {
	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices/pdf", requestBody, apphttp.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "facture_F-2024-0042.pdf")
}

func TestWorkshop_SoloAdminModifica(t *testing.T) {
	app := newAPI(t)
	body := `{"name": "Garage du Centre", "siret": "73282932000074", "country_code": "FR"}`

	resp := call(t, app, http.MethodPut, "/api/workshop", body, apphttp.RoleAccountant)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/workshop", body, apphttp.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/workshop", "", apphttp.RoleAccountant)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	w := decode[dto.WorkshopResponse](t, resp)
	assert.Equal(t, "73282932000074", w.SIRET)
}

func TestEInvoices_FormatoInvalido422(t *testing.T) {
	app := newAPI(t)
	cases := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{"email comprador", `"name": "Client Y"`, `"name": "Client Y", "email": "no-es-un-correo"`, "buyer.email"},
		{"email vendedor embebido", `"buyer": {`, `"seller": {"name": "Garage", "email": "@@"}, "buyer": {`, "seller.email"},
		{"tipo de documento", `"number": "F-2024-0042",`, `"number": "F-2024-0042", "type": "proforma",`, "invoice.type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := bytes.Replace([]byte(requestBody), []byte(tc.from), []byte(tc.to), 1)
			resp := call(t, app, http.MethodPost, "/api/einvoices", string(body), apphttp.RoleAdmin)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			e := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, billing.CodeInvalidField, e.Code)
			assert.Equal(t, tc.field, e.Field)
		})
	}
}

func TestWorkshop_BICInvalido(t *testing.T) {
	body := `{"name": "Garage du Centre", "iban": "FR7630006000011234567890189", "bic": "AG-1"}`
	resp := call(t, newAPI(t), http.MethodPut, "/api/workshop", body, apphttp.RoleAdmin)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "bic", decode[dto.ErrorResponse](t, resp).Field)
}

func TestEInvoices_BatchValidaElementos(t *testing.T) {
	bad := bytes.Replace([]byte(requestBody), []byte(`"name": "Client Y"`), []byte(`"name": "Client Y", "email": "no-es-un-correo"`), 1)
	body := `{"items": [` + requestBody + `,` + string(bad) + `]}`

	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices/batch", body, apphttp.RoleAdmin)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, billing.CodeInvalidField, e.Code)
	assert.Equal(t, "items[1].buyer.email", e.Field)
}

func TestEInvoices_TextoNoAdmitidoEnXML422(t *testing.T) {
	body := bytes.Replace([]byte(requestBody), []byte(`"name": "Client Y"`), []byte(`"name": "Client\u0001Y"`), 1)

	resp := call(t, newAPI(t), http.MethodPost, "/api/einvoices", string(body), apphttp.RoleAdmin)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, billing.CodeInvalidField, e.Code)
	assert.Equal(t, "buyer.name", e.Field)
}
