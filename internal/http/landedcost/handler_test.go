package landedcost_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	freightStore "github.com/MrJamesThe3rd/landed/internal/freight/store"
	landedCostHandler "github.com/MrJamesThe3rd/landed/internal/http/landedcost"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/landed/internal/invoice/store"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
	landedCostStore "github.com/MrJamesThe3rd/landed/internal/landedcost/store"
)

type fixture struct {
	router    http.Handler
	invoiceID uuid.UUID
	freightID uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()

	invoices := invoice.NewService(invoiceStore.New())
	costs := freight.NewService(freightStore.New())

	draft := invoice.NewDraft()
	draft.InvoiceNumber = "INV-001"
	draft.Supplier = "Acme Ltd"
	draft.AddLineItem(invoice.LineItemParams{Description: "Widget", Quantity: 10, UnitPrice: 5, HSCode: "1234"})

	inv, err := invoices.Add(ctx, draft)
	require.NoError(t, err)

	fc, err := costs.Add(ctx, freight.Components{Weight: 10, FreightRate: 2})
	require.NoError(t, err)

	svc := landedcost.NewService(landedCostStore.New(), invoices, costs, nil)

	r := chi.NewRouter()
	r.Route("/landed-costs", landedCostHandler.NewHandler(svc).Routes)

	return fixture{router: r, invoiceID: inv.ID, freightID: fc.ID}
}

func (f fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func (f fixture) generateBody() string {
	return fmt.Sprintf(`{"invoice_id":%q,"freight_id":%q,"duty_rates":{" 1234 ":10},"tax_rate":10}`,
		f.invoiceID, f.freightID)
}

type itemBody struct {
	ID              string  `json:"id"`
	FreightCost     float64 `json:"freight_cost"`
	DutyAmount      float64 `json:"duty_amount"`
	TaxAmount       float64 `json:"tax_amount"`
	TotalLandedCost float64 `json:"total_landed_cost"`
	UnitLandedCost  float64 `json:"unit_landed_cost"`
}

func TestHandler_Generate(t *testing.T) {
	f := newFixture(t)

	w := f.serve(http.MethodPost, "/landed-costs", f.generateBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var items []itemBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 1)

	assert.InDelta(t, 20, items[0].FreightCost, 1e-9)
	assert.InDelta(t, 7, items[0].DutyAmount, 1e-9)
	assert.InDelta(t, 7.7, items[0].TaxAmount, 1e-9)
	assert.InDelta(t, 84.7, items[0].TotalLandedCost, 1e-9)
	assert.InDelta(t, 8.47, items[0].UnitLandedCost, 1e-9)
}

func TestHandler_Generate_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "NoSelection", body: `{}`, wantStatus: http.StatusUnprocessableEntity},
		{
			name:       "UnknownInvoice",
			body:       fmt.Sprintf(`{"invoice_id":%q,"freight_id":%q}`, uuid.New(), f.freightID),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{name: "NegativeTax", body: `{"tax_rate":-5}`, wantStatus: http.StatusBadRequest},
		{name: "NegativeDuty", body: `{"duty_rates":{"1234":-1}}`, wantStatus: http.StatusBadRequest},
		{name: "Malformed", body: `{"invoice_id":"nope"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.serve(http.MethodPost, "/landed-costs", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_AccumulateSummaryDeleteClear(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusCreated, f.serve(http.MethodPost, "/landed-costs", f.generateBody()).Code)
	require.Equal(t, http.StatusCreated, f.serve(http.MethodPost, "/landed-costs", f.generateBody()).Code)

	w := f.serve(http.MethodGet, "/landed-costs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var items []itemBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 2)

	w = f.serve(http.MethodGet, "/landed-costs/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Rows       int     `json:"rows"`
		LandedCost float64 `json:"landed_cost"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 2, summary.Rows)
	assert.InDelta(t, 169.4, summary.LandedCost, 1e-9)

	assert.Equal(t, http.StatusNoContent, f.serve(http.MethodDelete, "/landed-costs/"+items[0].ID, "").Code)

	w = f.serve(http.MethodGet, "/landed-costs", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	assert.Len(t, items, 1)

	assert.Equal(t, http.StatusNoContent, f.serve(http.MethodDelete, "/landed-costs", "").Code)

	w = f.serve(http.MethodGet, "/landed-costs", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	assert.Empty(t, items)
}
