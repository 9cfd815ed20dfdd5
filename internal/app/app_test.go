package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/app"
	"github.com/MrJamesThe3rd/landed/internal/config"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"https://app.example"}
	cfg.RateLimit.Exports = 2
	cfg.RateLimit.Window = time.Minute

	return cfg
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func TestRouter_EndToEnd(t *testing.T) {
	a := app.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := a.Router(newConfig())

	w := post(t, h, "/api/v1/invoices", `{
		"invoice_number": "INV-001",
		"supplier": "Acme Ltd",
		"items": [{"description": "Widget", "quantity": 10, "unit_price": 5, "hs_code": "1234"}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var inv struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&inv))

	w = post(t, h, "/api/v1/freight", `{"shipment_type":"sea","weight":10,"freight_rate":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var fc struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fc))

	w = post(t, h, "/api/v1/landed-costs", fmt.Sprintf(
		`{"invoice_id":%q,"freight_id":%q,"duty_rates":{"1234":10},"tax_rate":10}`, inv.ID, fc.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-001,Acme Ltd,Widget,10,5.00,50.00,20.00,10.00,7.00,10.00,7.70,0.00,84.70,8.47,USD,1")

	stats, err := a.Dashboard.Stats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 84.7, stats.TotalLandedCost, 1e-9)
}

func TestRouter_RejectsNonJSON(t *testing.T) {
	h := app.New(nil).Router(newConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/freight", strings.NewReader("weight=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := app.New(nil).Router(newConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/invoices", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ExportRateLimit(t *testing.T) {
	h := app.New(nil).Router(newConfig())

	codes := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil)
		req.RemoteAddr = "203.0.113.7:4242"

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := app.NewLogger(cfg, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"rows":3`)
}
