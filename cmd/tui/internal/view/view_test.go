package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/dashboard"
	"github.com/MrJamesThe3rd/landed/internal/freight"
	freightStore "github.com/MrJamesThe3rd/landed/internal/freight/store"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: " 12.5 ", want: 12.5},
		{in: "-3", want: -3},
		{in: "abc", wantErr: true},
		{in: "1,5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errNotNumber)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateNonNegative("0"))
	assert.Error(t, validateNonNegative("-1"))
	assert.Error(t, validatePositive("0"))
	assert.NoError(t, validatePositive("0.5"))
	assert.NoError(t, validateDate("2026-03-01"))
	assert.Error(t, validateDate("01/03/2026"))
	assert.Error(t, required("supplier")("  "))
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2", wantErr: false},
		{in: "0.01", wantErr: false},
		{in: "-3", wantErr: true},
		{in: "0", wantErr: true},
		{in: "", wantErr: true},
		{in: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validatePositive(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestInvoicesModel_NewDraftUsesDefaultCurrency(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		want     invoice.Currency
	}{
		{name: "Configured", currency: "eur", want: invoice.CurrencyEUR},
		{name: "Unlisted", currency: "CHF", want: invoice.Currency("CHF")},
		{name: "Blank", currency: "", want: invoice.NewDraft().Currency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewInvoicesModel(nil, nil, tt.currency)

			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
			m = next.(InvoicesModel)

			assert.Equal(t, invoiceStateHeader, m.state)
			assert.Equal(t, tt.want, m.draft.Currency)
			assert.Equal(t, tt.want, m.header.currency)
		})
	}
}

func TestCurrencyOptions(t *testing.T) {
	assert.Len(t, currencyOptions(invoice.CurrencyUSD), len(invoice.Currencies))

	options := currencyOptions("CHF")
	require.Len(t, options, len(invoice.Currencies)+1)
	assert.Equal(t, invoice.Currency("CHF"), options[0].Value)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "84.70", FormatAmount(84.7))
	assert.Equal(t, "", amountField(0))
	assert.Equal(t, "1.25", amountField(1.25))
}

func TestDutyFieldsFor(t *testing.T) {
	inv := &invoice.Invoice{Items: []invoice.LineItem{
		{Description: "A", HSCode: "6109"},
		{Description: "B"},
		{Description: "C", HSCode: "6109"},
		{Description: "D", HSCode: "8471"},
	}}

	got := dutyFieldsFor(inv)

	assert.Equal(t, []dutyField{{hsCode: "6109"}, {hsCode: ""}, {hsCode: "8471"}}, got)
}

func TestWorksheetModel_Params(t *testing.T) {
	invID, freightID := uuid.New(), uuid.New()

	m := WorksheetModel{run: &runFields{
		invoiceID:    invID,
		freightID:    freightID,
		taxRate:      "20",
		otherCharges: "15.5",
		duties:       []dutyField{{hsCode: "6109", rate: "12"}, {hsCode: "", rate: ""}},
	}}

	p := m.params()

	assert.Equal(t, invID, p.InvoiceID)
	assert.Equal(t, freightID, p.FreightID)
	assert.InDelta(t, 20, p.TaxRate, 1e-9)
	assert.InDelta(t, 15.5, p.OtherCharges, 1e-9)
	assert.InDelta(t, 12, p.DutyRates.For("6109"), 1e-9)
	assert.Zero(t, p.DutyRates.For(""))
}

func TestWorksheetModel_RowsAndSummary(t *testing.T) {
	m := NewWorksheetModel(nil, nil, nil, 10)

	next, _ := m.Update(worksheetMsg{rows: []landedcost.Item{
		{ID: "1", InvoiceNumber: "INV-001", ItemDescription: "Widget", Quantity: 10, TotalPrice: 50, TotalLandedCost: 84.7, UnitLandedCost: 8.47},
	}})
	m = next.(WorksheetModel)

	assert.Equal(t, 1, m.summary.Rows)
	assert.Len(t, m.table.Rows(), 1)
	assert.Contains(t, m.View(), "84.70")
}

func TestWorksheetModel_GenerateNeedsChoices(t *testing.T) {
	m := NewWorksheetModel(nil, nil, nil, 10)

	next, _ := m.Update(choicesMsg{})
	m = next.(WorksheetModel)

	assert.Equal(t, worksheetStateBrowse, m.state)
	assert.Contains(t, m.status, "Add at least one invoice")
}

func TestDashboardModel(t *testing.T) {
	m := NewDashboardModel(nil)
	assert.Contains(t, m.View(), "Loading")

	next, _ := m.Update(statsMsg{stats: dashboard.Stats{
		InvoiceCount:      1,
		TotalInvoiceValue: 50,
		Recent:            []*invoice.Invoice{{InvoiceNumber: "INV-001", Supplier: "Acme", Currency: invoice.CurrencyUSD}},
	}})
	m = next.(DashboardModel)

	view := m.View()
	assert.Contains(t, view, "INV-001")
	assert.Contains(t, view, "50.00")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestFreightModel_LoadAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := freight.NewService(freightStore.New()).WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	})

	_, err := svc.Add(ctx, freight.Components{ShipmentType: freight.ShipmentAir, Weight: 2, FreightRate: 10})
	require.NoError(t, err)

	m := NewFreightModel(svc)

	next, _ := m.Update(m.Init()())
	m = next.(FreightModel)
	require.Len(t, m.costs, 1)
	assert.Contains(t, m.View(), "Air Freight")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(FreightModel)
	require.NotNil(t, cmd)

	next, cmd = m.Update(cmd())
	m = next.(FreightModel)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(FreightModel)
	assert.Empty(t, m.costs)
}
