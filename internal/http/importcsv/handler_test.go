package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/classify"
	classifyStore "github.com/MrJamesThe3rd/landed/internal/classify/store"
	"github.com/MrJamesThe3rd/landed/internal/http/importcsv"
	"github.com/MrJamesThe3rd/landed/internal/importer"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/landed/internal/invoice/store"
)

const sheet = "Description;Quantity;Unit Price;HS Code\nWidget;10;5,00;\nBolt;100;0,10;7318\nBroken;x;1;\n"

func newRequest(t *testing.T, fields map[string]string, file string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != "" {
		fw, err := mw.CreateFormFile("file", "items.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

type importBody struct {
	InvoiceID string `json:"invoice_id"`
	Profile   string `json:"profile"`
	Skipped   int    `json:"skipped"`
	Items     []struct {
		Description string `json:"description"`
		HSCode      string `json:"hs_code"`
	} `json:"items"`
	TotalValue float64 `json:"total_value"`
}

func setup(t *testing.T) (http.Handler, *invoice.Service) {
	t.Helper()

	classifier := classify.NewService(classifyStore.New())
	require.NoError(t, classifier.Learn(context.Background(), "widget", "8479.89"))

	invoices := invoice.NewService(invoiceStore.New())

	r := chi.NewRouter()
	r.Route("/import", importcsv.NewHandler(importer.NewService(classifier, nil), invoices).Routes)

	return r, invoices
}

func TestHandler_Import(t *testing.T) {
	h, invoices := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(t, map[string]string{
		"invoice_number": "INV-042",
		"supplier":       "Shenzhen Parts Co",
		"currency":       "CNY",
		"exchange_rate":  "0.14",
		"date":           "2026-03-01",
	}, sheet))
	require.Equal(t, http.StatusCreated, w.Code)

	var got importBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

	assert.NotEmpty(t, got.InvoiceID)
	assert.Equal(t, "generic", got.Profile)
	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "8479.89", got.Items[0].HSCode)
	assert.Equal(t, "7318", got.Items[1].HSCode)
	assert.InDelta(t, 60, got.TotalValue, 1e-9)

	list, err := invoices.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "INV-042", list[0].InvoiceNumber)
	assert.Equal(t, invoice.CurrencyCNY, list[0].Currency)
	assert.Equal(t, 0.14, list[0].ExchangeRate)
}

func TestHandler_Import_DryRun(t *testing.T) {
	h, invoices := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(t, map[string]string{"dry_run": "true"}, sheet))
	require.Equal(t, http.StatusOK, w.Code)

	var got importBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Empty(t, got.InvoiceID)
	assert.Len(t, got.Items, 2)

	list, err := invoices.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHandler_Import_BadInput(t *testing.T) {
	h, _ := setup(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(t, nil, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(t, nil, "Date,Amount\n2026-01-01,1\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
